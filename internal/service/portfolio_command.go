package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/GTDGit/showcase_api/internal/models"
	"github.com/GTDGit/showcase_api/internal/utils"
)

// Portfolio mutation operations.
const (
	OpEditProduct   = "editProduct"
	OpUpdateStatus  = "updateStatus"
	OpUpdateURL     = "updateURL"
	OpRegenerateURL = "regenerateURL"
)

// MutationRequest is the body of PATCH /portfolio.
type MutationRequest struct {
	ProductID string          `json:"productId"`
	Operation string          `json:"operation"`
	Updates   json.RawMessage `json:"updates"`
}

// MutationResult is returned by every command.
type MutationResult struct {
	Message string                 `json:"-"`
	Product *models.ProductListing `json:"product"`
}

// Command is a decoded portfolio mutation. The set of commands is closed:
// only this package can implement execute.
type Command interface {
	Operation() string
	ProductID() string
	execute(ctx context.Context, s *PortfolioService) (*MutationResult, error)
}

// EditProductUpdates are the editable showcase fields. Nil fields are left
// unchanged; text fields replace the content and keep the block's style.
type EditProductUpdates struct {
	ProductName        *string               `json:"productName"`
	ProductPrice       *string               `json:"productPrice"`
	ProductDescription *string               `json:"productDescription"`
	ShopName           *string               `json:"shopName"`
	ShopAddress        *string               `json:"shopAddress"`
	TemplateName       *string               `json:"templateName"`
	Status             *models.ProductStatus `json:"status"`
	FAQs               []models.FAQ          `json:"faqs"`
}

// EditProductCommand applies field edits to a product.
type EditProductCommand struct {
	ID      string
	Updates EditProductUpdates
}

// UpdateStatusCommand sets the status of one share URL.
type UpdateStatusCommand struct {
	ID     string
	URLID  string
	Status models.URLStatus
}

// UpdateURLCommand toggles one share URL between active and inactive.
type UpdateURLCommand struct {
	ID    string
	URLID string
}

// RegenerateURLCommand replaces the token of one share URL and keeps its usage.
type RegenerateURLCommand struct {
	ID    string
	URLID string
}

func (c *EditProductCommand) Operation() string   { return OpEditProduct }
func (c *UpdateStatusCommand) Operation() string  { return OpUpdateStatus }
func (c *UpdateURLCommand) Operation() string     { return OpUpdateURL }
func (c *RegenerateURLCommand) Operation() string { return OpRegenerateURL }

func (c *EditProductCommand) ProductID() string   { return c.ID }
func (c *UpdateStatusCommand) ProductID() string  { return c.ID }
func (c *UpdateURLCommand) ProductID() string     { return c.ID }
func (c *RegenerateURLCommand) ProductID() string { return c.ID }

type commandParser func(productID string, updates json.RawMessage) (Command, error)

var commandParsers = map[string]commandParser{
	OpEditProduct:   parseEditProduct,
	OpUpdateStatus:  parseUpdateStatus,
	OpUpdateURL:     parseUpdateURL,
	OpRegenerateURL: parseRegenerateURL,
}

// ParseCommand decodes req into its command. Unknown operations fail with
// ErrUnsupportedOperation, malformed bodies with ErrValidation.
func ParseCommand(req MutationRequest) (Command, error) {
	parse, ok := commandParsers[req.Operation]
	if !ok {
		return nil, fmt.Errorf("%w: %q", utils.ErrUnsupportedOperation, req.Operation)
	}
	id := strings.TrimSpace(req.ProductID)
	if id == "" {
		return nil, fmt.Errorf("%w: productId is required", utils.ErrValidation)
	}
	return parse(id, req.Updates)
}

func decodeUpdates(raw json.RawMessage, dst any) error {
	if len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("%w: invalid updates: %v", utils.ErrValidation, err)
	}
	return nil
}

func parseEditProduct(id string, raw json.RawMessage) (Command, error) {
	cmd := &EditProductCommand{ID: id}
	if err := decodeUpdates(raw, &cmd.Updates); err != nil {
		return nil, err
	}
	if s := cmd.Updates.Status; s != nil && !s.Valid() {
		return nil, fmt.Errorf("%w: status must be one of draft, published, archived", utils.ErrValidation)
	}
	return cmd, nil
}

type urlUpdates struct {
	URLID  string `json:"urlId"`
	Status string `json:"status"`
}

func parseURLUpdates(raw json.RawMessage) (urlUpdates, error) {
	var u urlUpdates
	if err := decodeUpdates(raw, &u); err != nil {
		return u, err
	}
	u.URLID = strings.TrimSpace(u.URLID)
	if u.URLID == "" {
		return u, fmt.Errorf("%w: updates.urlId is required", utils.ErrValidation)
	}
	return u, nil
}

func parseUpdateStatus(id string, raw json.RawMessage) (Command, error) {
	u, err := parseURLUpdates(raw)
	if err != nil {
		return nil, err
	}
	status := models.URLStatus(u.Status)
	if !status.Valid() {
		return nil, fmt.Errorf("%w: updates.status must be active or inactive", utils.ErrValidation)
	}
	return &UpdateStatusCommand{ID: id, URLID: u.URLID, Status: status}, nil
}

func parseUpdateURL(id string, raw json.RawMessage) (Command, error) {
	u, err := parseURLUpdates(raw)
	if err != nil {
		return nil, err
	}
	return &UpdateURLCommand{ID: id, URLID: u.URLID}, nil
}

func parseRegenerateURL(id string, raw json.RawMessage) (Command, error) {
	u, err := parseURLUpdates(raw)
	if err != nil {
		return nil, err
	}
	return &RegenerateURLCommand{ID: id, URLID: u.URLID}, nil
}

func (c *EditProductCommand) execute(ctx context.Context, s *PortfolioService) (*MutationResult, error) {
	return s.apply(ctx, c.ID, "Product updated successfully", func(doc *models.ProductDocument) error {
		u := c.Updates
		if u.ProductName != nil || u.ProductPrice != nil || u.ProductDescription != nil {
			if doc.ProductDetails == nil {
				doc.ProductDetails = &models.ProductDetails{}
			}
			setContent(&doc.ProductDetails.ProductName, u.ProductName)
			setContent(&doc.ProductDetails.ProductPrice, u.ProductPrice)
			setContent(&doc.ProductDetails.ProductDescription, u.ProductDescription)
		}
		if u.ShopName != nil || u.ShopAddress != nil {
			if doc.ShopDetails == nil {
				doc.ShopDetails = &models.ShopDetails{}
			}
			setContent(&doc.ShopDetails.ShopName, u.ShopName)
			setContent(&doc.ShopDetails.ShopAddress, u.ShopAddress)
		}
		if u.TemplateName != nil {
			doc.TemplateName = models.Ptr(*u.TemplateName)
		}
		if u.Status != nil {
			doc.Status = models.Ptr(*u.Status)
		}
		if u.FAQs != nil {
			doc.FAQs = u.FAQs
		}
		return nil
	})
}

func (c *UpdateStatusCommand) execute(ctx context.Context, s *PortfolioService) (*MutationResult, error) {
	return s.apply(ctx, c.ID, "URL status updated successfully", func(doc *models.ProductDocument) error {
		i := doc.FindURL(c.URLID)
		if i < 0 {
			return utils.ErrURLNotFound
		}
		doc.URLs[i].Status = models.Ptr(c.Status)
		return nil
	})
}

func (c *UpdateURLCommand) execute(ctx context.Context, s *PortfolioService) (*MutationResult, error) {
	return s.apply(ctx, c.ID, "URL updated successfully", func(doc *models.ProductDocument) error {
		i := doc.FindURL(c.URLID)
		if i < 0 {
			return utils.ErrURLNotFound
		}
		next := models.URLInactive
		if models.EffectiveURLStatus(doc.URLs[i]) == models.URLInactive {
			next = models.URLActive
		}
		doc.URLs[i].Status = models.Ptr(next)
		return nil
	})
}

func (c *RegenerateURLCommand) execute(ctx context.Context, s *PortfolioService) (*MutationResult, error) {
	token, err := utils.GenerateShareToken()
	if err != nil {
		return nil, err
	}
	return s.apply(ctx, c.ID, "URL regenerated successfully", func(doc *models.ProductDocument) error {
		i := doc.FindURL(c.URLID)
		if i < 0 {
			return utils.ErrURLNotFound
		}
		doc.URLs[i].ID = token
		return nil
	})
}

func setContent(block **models.TextBlock, v *string) {
	if v == nil {
		return
	}
	if *block == nil {
		*block = &models.TextBlock{}
	}
	(*block).Content = models.Ptr(*v)
}
