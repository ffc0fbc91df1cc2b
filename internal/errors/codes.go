package errors

// 에러 코드 상수 정의
// 형식: CATEGORY_SPECIFIC_DETAIL
// 프론트엔드에서 이 코드를 기반으로 메시지를 매핑함

const (
	// ==================== 인증 (AUTH_) ====================
	AuthUnauthorized       = "AUTH_UNAUTHORIZED"        // 로그인 필요
	AuthInvalidCredentials = "AUTH_INVALID_CREDENTIALS" // 잘못된 이메일/비밀번호
	AuthTokenExpired       = "AUTH_TOKEN_EXPIRED"       // 토큰 만료
	AuthTokenInvalid       = "AUTH_TOKEN_INVALID"       // 잘못된 토큰
	AuthEmailAlreadyExists = "AUTH_EMAIL_EXISTS"        // 이메일 중복

	// ==================== 인가/권한 (AUTHZ_) ====================
	AuthzForbidden    = "AUTHZ_FORBIDDEN"      // 접근 권한 없음
	AuthzRoleNotFound = "AUTHZ_ROLE_NOT_FOUND" // 권한 정보 없음
	AuthzAdminOnly    = "AUTHZ_ADMIN_ONLY"     // 관리자만 가능

	// ==================== 검증 (VALIDATION_) ====================
	ValidationInvalidInput  = "VALIDATION_INVALID_INPUT"  // 잘못된 입력
	ValidationInvalidID     = "VALIDATION_INVALID_ID"     // 잘못된 ID
	ValidationInvalidRange  = "VALIDATION_INVALID_RANGE"  // 범위 초과
	ValidationRequired      = "VALIDATION_REQUIRED"       // 필수 항목
	ValidationInvalidFormat = "VALIDATION_INVALID_FORMAT" // 잘못된 형식

	// ==================== 리소스 (RESOURCE_) ====================
	ResourceNotFound      = "RESOURCE_NOT_FOUND"      // 리소스 없음
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS" // 이미 존재
	ResourceConflict      = "RESOURCE_CONFLICT"       // 충돌

	// ==================== 상품 (PRODUCT_) ====================
	ProductNotFound     = "PRODUCT_NOT_FOUND"     // 상품 없음
	ProductNotPublished = "PRODUCT_NOT_PUBLISHED" // 미게시 상품

	// ==================== 옵션 구성 (VARIATION_) ====================
	VariationPanelNotFound     = "VARIATION_PANEL_NOT_FOUND"     // 패널 없음
	VariationAttributeNotFound = "VARIATION_ATTRIBUTE_NOT_FOUND" // 속성 없음
	VariationInvalidPriceMode  = "VARIATION_INVALID_PRICE_MODE"  // 잘못된 가격 모드
	VariationPriceOutOfRange   = "VARIATION_PRICE_OUT_OF_RANGE"  // 가격 범위 초과
	VariationUnknownField      = "VARIATION_UNKNOWN_FIELD"       // 알 수 없는 필드
	VariationInvalidDocument   = "VARIATION_INVALID_DOCUMENT"    // 문서 검증 실패

	// ==================== 견적 (PRICING_) ====================
	PricingInvalidSelection = "PRICING_INVALID_SELECTION" // 잘못된 선택 조합

	// ==================== 특가 (FLASH_SALE_) ====================
	FlashSaleNotFound      = "FLASH_SALE_NOT_FOUND"      // 특가 없음
	FlashSaleInvalidWindow = "FLASH_SALE_INVALID_WINDOW" // 잘못된 기간
	FlashSaleInvalidPrice  = "FLASH_SALE_INVALID_PRICE"  // 잘못된 특가 가격

	// ==================== 내보내기 (EXPORT_) ====================
	ExportFailed = "EXPORT_FAILED" // 엑셀 생성 실패

	// ==================== 내부 오류 (INTERNAL_) ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"   // 서버 오류
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR" // DB 오류
	InternalCacheError    = "INTERNAL_CACHE_ERROR"    // 캐시 오류
	InternalConfigError   = "INTERNAL_CONFIG_ERROR"   // 설정 오류
)
