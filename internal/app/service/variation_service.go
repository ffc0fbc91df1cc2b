package service

import (
	"github.com/ikkim/printmoa-backend/internal/app/model"
	"github.com/ikkim/printmoa-backend/internal/app/repository"
	"github.com/ikkim/printmoa-backend/internal/app/variation"
	"github.com/ikkim/printmoa-backend/pkg/logger"
)

// VariationService is the editor-facing surface over a product's variation
// document. Every operation is synchronous: it loads the stored document,
// applies the requested engine mutations, persists the result and returns the
// updated document, or rejects the change without touching storage.
type VariationService interface {
	GetDocument(productID uint) (model.VariationDocument, error)
	ReplaceDocument(productID uint, doc model.VariationDocument) (model.VariationDocument, error)
	ResetDocument(productID uint) (model.VariationDocument, error)
	Validate(productID uint) (variation.FieldErrors, error)

	AddPanel(productID uint, name string, typ model.PanelType) (model.VariationDocument, string, error)
	RemovePanel(productID uint, panelID string) (model.VariationDocument, error)
	UpdatePanel(productID uint, panelID string, changes PanelChanges) (model.VariationDocument, error)

	AddAttribute(productID uint, panelID string) (model.VariationDocument, string, error)
	RemoveAttribute(productID uint, panelID, attributeID string) (model.VariationDocument, error)
	SetDefaultAttribute(productID uint, panelID, attributeID string) (model.VariationDocument, error)
	UpdateAttributeField(productID uint, panelID, attributeID, field string, value any) (model.VariationDocument, error)
	SetQuantityPrice(productID uint, panelID, attributeID, quantityAttributeID string, amount float64) (model.VariationDocument, error)
	SetAttributeLogic(productID uint, panelID, attributeID string, logic *model.ConditionalLogic) (model.VariationDocument, error)
}

type variationService struct {
	productRepo repository.ProductRepository
	idGen       variation.IDGenerator
	quoteCache  *QuoteCache
}

// NewVariationService wires the editor surface. quoteCache may be nil when
// quote caching is disabled.
func NewVariationService(productRepo repository.ProductRepository, idGen variation.IDGenerator, quoteCache *QuoteCache) VariationService {
	if idGen == nil {
		idGen = variation.NewUUIDGenerator()
	}
	return &variationService{
		productRepo: productRepo,
		idGen:       idGen,
		quoteCache:  quoteCache,
	}
}

func (s *variationService) GetDocument(productID uint) (model.VariationDocument, error) {
	product, err := s.loadProduct(productID)
	if err != nil {
		return nil, err
	}
	return product.Variations, nil
}

// ReplaceDocument swaps the whole document, e.g. when the editor saves a
// draft it assembled client-side. The document must pass commit validation.
func (s *variationService) ReplaceDocument(productID uint, doc model.VariationDocument) (model.VariationDocument, error) {
	if _, err := s.loadProduct(productID); err != nil {
		return nil, err
	}
	if errs := variation.ValidateDocument(doc); errs != nil {
		return nil, &DocumentValidationError{Fields: errs}
	}
	return s.store(productID, doc)
}

// ResetDocument discards the document and reseeds the starter panel set.
func (s *variationService) ResetDocument(productID uint) (model.VariationDocument, error) {
	if _, err := s.loadProduct(productID); err != nil {
		return nil, err
	}
	return s.store(productID, variation.NewStarterDocument(s.idGen))
}

func (s *variationService) Validate(productID uint) (variation.FieldErrors, error) {
	doc, err := s.GetDocument(productID)
	if err != nil {
		return nil, err
	}
	return variation.ValidateDocument(doc), nil
}

func (s *variationService) AddPanel(productID uint, name string, typ model.PanelType) (model.VariationDocument, string, error) {
	doc, err := s.GetDocument(productID)
	if err != nil {
		return nil, "", err
	}
	doc, panelID := variation.AddPanel(doc, s.idGen, name, typ)
	doc, err = s.store(productID, doc)
	return doc, panelID, err
}

func (s *variationService) RemovePanel(productID uint, panelID string) (model.VariationDocument, error) {
	return s.updateDocument(productID, func(doc model.VariationDocument) (model.VariationDocument, error) {
		return variation.RemovePanel(doc, panelID)
	})
}

// PanelChanges carries the optional panel settings of one editor save.
// Nil fields are left unchanged.
type PanelChanges struct {
	Name             *string
	Enabled          *bool
	PricingMode      *model.PriceMode
	DependOnQuantity *bool
	ConditionalLogic *model.ConditionalLogic
}

// UpdatePanel applies every requested panel change to one copy of the
// document and persists them together. A rejected change commits nothing.
func (s *variationService) UpdatePanel(productID uint, panelID string, changes PanelChanges) (model.VariationDocument, error) {
	return s.updateDocument(productID, func(doc model.VariationDocument) (model.VariationDocument, error) {
		var err error
		if changes.Name != nil {
			if doc, err = variation.SetPanelName(doc, panelID, *changes.Name); err != nil {
				return nil, err
			}
		}
		if changes.Enabled != nil {
			if doc, err = variation.SetEnabled(doc, panelID, *changes.Enabled); err != nil {
				return nil, err
			}
		}
		if changes.PricingMode != nil {
			if doc, err = variation.SetPricingMode(doc, panelID, *changes.PricingMode); err != nil {
				return nil, err
			}
		}
		if changes.DependOnQuantity != nil {
			if doc, err = variation.SetDependOnQuantity(doc, panelID, *changes.DependOnQuantity); err != nil {
				return nil, err
			}
		}
		if changes.ConditionalLogic != nil {
			if doc, err = variation.SetPanelLogic(doc, panelID, changes.ConditionalLogic); err != nil {
				return nil, err
			}
		}
		return doc, nil
	})
}

func (s *variationService) AddAttribute(productID uint, panelID string) (model.VariationDocument, string, error) {
	doc, err := s.GetDocument(productID)
	if err != nil {
		return nil, "", err
	}

	panel, ok := variation.FindPanel(doc, panelID)
	if !ok {
		return nil, "", variation.ErrPanelNotFound
	}
	panel, attrID := variation.AddAttribute(panel, s.idGen)

	doc, err = s.storePanel(productID, doc, panel)
	if err != nil {
		return nil, "", err
	}
	return doc, attrID, nil
}

func (s *variationService) RemoveAttribute(productID uint, panelID, attributeID string) (model.VariationDocument, error) {
	return s.updatePanel(productID, panelID, func(p model.VariationPanel) (model.VariationPanel, error) {
		return variation.RemoveAttribute(p, attributeID)
	})
}

func (s *variationService) SetDefaultAttribute(productID uint, panelID, attributeID string) (model.VariationDocument, error) {
	return s.updatePanel(productID, panelID, func(p model.VariationPanel) (model.VariationPanel, error) {
		return variation.SetDefaultAttribute(p, attributeID)
	})
}

func (s *variationService) UpdateAttributeField(productID uint, panelID, attributeID, field string, value any) (model.VariationDocument, error) {
	return s.updatePanel(productID, panelID, func(p model.VariationPanel) (model.VariationPanel, error) {
		return variation.UpdateAttributeField(p, attributeID, field, value)
	})
}

func (s *variationService) SetQuantityPrice(productID uint, panelID, attributeID, quantityAttributeID string, amount float64) (model.VariationDocument, error) {
	return s.updatePanel(productID, panelID, func(p model.VariationPanel) (model.VariationPanel, error) {
		return variation.SetQuantityPrice(p, attributeID, quantityAttributeID, amount)
	})
}

func (s *variationService) SetAttributeLogic(productID uint, panelID, attributeID string, logic *model.ConditionalLogic) (model.VariationDocument, error) {
	return s.updatePanel(productID, panelID, func(p model.VariationPanel) (model.VariationPanel, error) {
		return variation.SetAttributeLogic(p, attributeID, logic)
	})
}

// DocumentValidationError carries per-field failures from commit validation.
type DocumentValidationError struct {
	Fields variation.FieldErrors
}

func (e *DocumentValidationError) Error() string {
	return "variation document failed validation"
}

func (s *variationService) loadProduct(productID uint) (*model.Product, error) {
	product, err := s.productRepo.FindByID(productID)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return product, nil
}

func (s *variationService) updateDocument(productID uint, fn func(model.VariationDocument) (model.VariationDocument, error)) (model.VariationDocument, error) {
	doc, err := s.GetDocument(productID)
	if err != nil {
		return nil, err
	}
	doc, err = fn(doc)
	if err != nil {
		return nil, err
	}
	return s.store(productID, doc)
}

func (s *variationService) updatePanel(productID uint, panelID string, fn func(model.VariationPanel) (model.VariationPanel, error)) (model.VariationDocument, error) {
	doc, err := s.GetDocument(productID)
	if err != nil {
		return nil, err
	}

	panel, ok := variation.FindPanel(doc, panelID)
	if !ok {
		return nil, variation.ErrPanelNotFound
	}
	panel, err = fn(panel)
	if err != nil {
		return nil, err
	}
	return s.storePanel(productID, doc, panel)
}

// storePanel swaps the updated panel into the document and persists it.
func (s *variationService) storePanel(productID uint, doc model.VariationDocument, panel model.VariationPanel) (model.VariationDocument, error) {
	next := doc.Clone()
	for i := range next {
		if next[i].ID == panel.ID {
			next[i] = panel
			break
		}
	}
	return s.store(productID, next)
}

func (s *variationService) store(productID uint, doc model.VariationDocument) (model.VariationDocument, error) {
	if err := s.productRepo.UpdateVariations(productID, doc); err != nil {
		logger.Error("Failed to persist variation document", err, map[string]interface{}{
			"product_id": productID,
		})
		return nil, err
	}

	// Stored quotes are stale the moment the document changes.
	s.quoteCache.InvalidateProduct(productID)

	logger.Debug("Variation document updated", map[string]interface{}{
		"product_id": productID,
		"panels":     len(doc),
	})
	return doc, nil
}
