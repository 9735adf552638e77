package domain

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/asaskevich/govalidator"

	"github.com/relaydesk/relaydesk/pkg/signature"
)

//go:generate mockgen -destination mocks/mock_signature_template_service.go -package mocks github.com/relaydesk/relaydesk/internal/domain SignatureTemplateService
//go:generate mockgen -destination mocks/mock_signature_template_repository.go -package mocks github.com/relaydesk/relaydesk/internal/domain SignatureTemplateRepository

const (
	MaxTemplateNameLength = 64
	DefaultListLimit      = 50
	MaxListLimit          = 100
)

// SignatureTemplate is a saved signature. HTMLContent is exactly the
// rendering of Tree at save time; the tree is kept so the template can be
// reopened in the builder.
type SignatureTemplate struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	HTMLContent string         `json:"html_content"`
	Tree        signature.Tree `json:"tree"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

func (t *SignatureTemplate) Validate() error {
	if !govalidator.IsUUID(t.ID) {
		return fmt.Errorf("invalid signature template: id must be a valid UUID")
	}
	if err := ValidateTemplateName(t.Name); err != nil {
		return err
	}
	if err := signature.Validate(t.Tree); err != nil {
		return fmt.Errorf("invalid signature template: %w", err)
	}
	if t.HTMLContent == "" {
		return fmt.Errorf("invalid signature template: html_content is required")
	}
	return nil
}

// ValidateTemplateName rejects untitled names and names longer than
// MaxTemplateNameLength runes.
func ValidateTemplateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return NewValidationError("name is required")
	}
	if !govalidator.StringLength(name, "1", strconv.Itoa(MaxTemplateNameLength)) {
		return NewValidationError(fmt.Sprintf("name length must be between 1 and %d", MaxTemplateNameLength))
	}
	return nil
}

// SignatureTemplateUpdate lists the columns to change. Nil fields are kept;
// a nil Tree keeps the stored tree.
type SignatureTemplateUpdate struct {
	Name        *string
	HTMLContent *string
	Tree        signature.Tree
}

func (u SignatureTemplateUpdate) IsEmpty() bool {
	return u.Name == nil && u.HTMLContent == nil && u.Tree == nil
}

// Request/Response types
type CreateSignatureTemplateRequest struct {
	Name string         `json:"name"`
	Tree signature.Tree `json:"tree"`
}

func (r *CreateSignatureTemplateRequest) Validate() error {
	if err := ValidateTemplateName(r.Name); err != nil {
		return err
	}
	if err := signature.Validate(r.Tree); err != nil {
		return NewValidationError(err.Error())
	}
	return nil
}

type GetSignatureTemplateRequest struct {
	ID string `json:"id"`
}

func (r *GetSignatureTemplateRequest) FromURLParams(queryParams url.Values) error {
	r.ID = queryParams.Get("id")
	return r.Validate()
}

func (r *GetSignatureTemplateRequest) Validate() error {
	if r.ID == "" {
		return NewValidationError("id is required")
	}
	if !govalidator.IsUUID(r.ID) {
		return NewValidationError("id must be a valid UUID")
	}
	return nil
}

type ListSignatureTemplatesRequest struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

func (r *ListSignatureTemplatesRequest) FromURLParams(queryParams url.Values) (err error) {
	r.Limit = DefaultListLimit
	if v := queryParams.Get("limit"); v != "" {
		if r.Limit, err = strconv.Atoi(v); err != nil {
			return NewValidationError("limit must be a valid integer")
		}
	}
	if v := queryParams.Get("offset"); v != "" {
		if r.Offset, err = strconv.Atoi(v); err != nil {
			return NewValidationError("offset must be a valid integer")
		}
	}
	if r.Limit < 1 || r.Limit > MaxListLimit {
		return NewValidationError(fmt.Sprintf("limit must be between 1 and %d", MaxListLimit))
	}
	if r.Offset < 0 {
		return NewValidationError("offset must be zero or positive")
	}
	return nil
}

// UpdateSignatureTemplateRequest changes the name, the tree or both. The
// stored HTML is re-rendered whenever the tree changes.
type UpdateSignatureTemplateRequest struct {
	ID   string          `json:"id"`
	Name *string         `json:"name,omitempty"`
	Tree *signature.Tree `json:"tree,omitempty"`
}

func (r *UpdateSignatureTemplateRequest) Validate() error {
	if !govalidator.IsUUID(r.ID) {
		return NewValidationError("id must be a valid UUID")
	}
	if r.Name == nil && r.Tree == nil {
		return NewValidationError("nothing to update: name or tree is required")
	}
	if r.Name != nil {
		if err := ValidateTemplateName(*r.Name); err != nil {
			return err
		}
	}
	if r.Tree != nil {
		if err := signature.Validate(*r.Tree); err != nil {
			return NewValidationError(err.Error())
		}
	}
	return nil
}

type DeleteSignatureTemplateRequest struct {
	ID string `json:"id"`
}

func (r *DeleteSignatureTemplateRequest) Validate() error {
	if !govalidator.IsUUID(r.ID) {
		return NewValidationError("id must be a valid UUID")
	}
	return nil
}

// RenderSignatureRequest renders an unsaved tree.
type RenderSignatureRequest struct {
	Tree   signature.Tree `json:"tree"`
	Minify bool           `json:"minify,omitempty"`
}

func (r *RenderSignatureRequest) Validate() error {
	if err := signature.Validate(r.Tree); err != nil {
		return NewValidationError(err.Error())
	}
	return nil
}

// PreviewSignatureRequest fills the placeholders of a saved template with
// sample values.
type PreviewSignatureRequest struct {
	ID   string                    `json:"id"`
	Data signature.PlaceholderData `json:"data"`
}

func (r *PreviewSignatureRequest) Validate() error {
	if !govalidator.IsUUID(r.ID) {
		return NewValidationError("id must be a valid UUID")
	}
	if r.Data.Email != "" && !govalidator.IsEmail(r.Data.Email) {
		return NewValidationError("data.email must be a valid email address")
	}
	return nil
}

type RenderSignatureResponse struct {
	HTML string `json:"html"`
}

type SignatureTemplateService interface {
	// CreateTemplate renders the tree and stores it under a new id
	CreateTemplate(ctx context.Context, name string, tree signature.Tree) (*SignatureTemplate, error)

	GetTemplate(ctx context.Context, id string) (*SignatureTemplate, error)

	ListTemplates(ctx context.Context, limit, offset int) ([]*SignatureTemplate, error)

	// UpdateTemplate applies a partial update, re-rendering the HTML when the
	// tree changes
	UpdateTemplate(ctx context.Context, req *UpdateSignatureTemplateRequest) (*SignatureTemplate, error)

	DeleteTemplate(ctx context.Context, id string) error

	// RenderTree renders an unsaved tree, optionally minified
	RenderTree(ctx context.Context, tree signature.Tree, minify bool) (string, error)

	// PreviewTemplate substitutes placeholder values into a saved template
	PreviewTemplate(ctx context.Context, id string, data signature.PlaceholderData) (string, error)

	// CompileTemplateMJML exports a saved template as MJML and compiles it
	CompileTemplateMJML(ctx context.Context, id string) (*signature.CompileResult, error)
}

// SignatureTemplateRepository provides database operations for signature templates
type SignatureTemplateRepository interface {
	CreateTemplate(ctx context.Context, template *SignatureTemplate) error

	// GetTemplateByID returns *ErrTemplateNotFound when no row matches
	GetTemplateByID(ctx context.Context, id string) (*SignatureTemplate, error)

	// ListTemplates orders by most recently updated
	ListTemplates(ctx context.Context, limit, offset int) ([]*SignatureTemplate, error)

	// UpdateTemplate is last-write-wins and returns *ErrTemplateNotFound when
	// no row matches
	UpdateTemplate(ctx context.Context, id string, update SignatureTemplateUpdate) error

	DeleteTemplate(ctx context.Context, id string) error
}
