package domain

import (
	"context"
	"fmt"
	"time"

	"github.com/asaskevich/govalidator"

	"github.com/relaydesk/relaydesk/pkg/signature"
)

//go:generate mockgen -destination mocks/mock_builder_session_store.go -package mocks github.com/relaydesk/relaydesk/internal/domain BuilderSessionStore
//go:generate mockgen -destination mocks/mock_builder_service.go -package mocks github.com/relaydesk/relaydesk/internal/domain BuilderService

// BuilderSession is one open editor. TemplateID is empty until the first
// save; later saves update that template.
type BuilderSession struct {
	ID           string             `json:"id"`
	TemplateID   string             `json:"template_id,omitempty"`
	TemplateName string             `json:"template_name,omitempty"`
	Session      *signature.Session `json:"session"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

// BuilderState is what the editor receives after every operation.
type BuilderState struct {
	SessionID    string         `json:"session_id"`
	TemplateID   string         `json:"template_id,omitempty"`
	TemplateName string         `json:"template_name,omitempty"`
	Tree         signature.Tree `json:"tree"`
	SelectedID   string         `json:"selected_id,omitempty"`
	HTML         string         `json:"html"`
	Changed      bool           `json:"changed"`
	// InsertedID is set by a placement that added a block
	InsertedID string `json:"inserted_id,omitempty"`
}

func NewBuilderState(s *BuilderSession, changed bool) *BuilderState {
	return &BuilderState{
		SessionID:    s.ID,
		TemplateID:   s.TemplateID,
		TemplateName: s.TemplateName,
		Tree:         s.Session.Tree(),
		SelectedID:   s.Session.SelectedID(),
		HTML:         s.Session.Render(),
		Changed:      changed,
	}
}

func validateSessionID(id string) error {
	if id == "" {
		return NewValidationError("session_id is required")
	}
	if !govalidator.IsUUID(id) {
		return NewValidationError("session_id must be a valid UUID")
	}
	return nil
}

func validateBlockID(field, id string) error {
	if id == "" {
		return NewValidationError(fmt.Sprintf("%s is required", field))
	}
	return nil
}

// BuilderOpenRequest starts a session on an empty tree, or on a saved
// template when TemplateID is set.
type BuilderOpenRequest struct {
	TemplateID string `json:"template_id,omitempty"`
}

func (r *BuilderOpenRequest) Validate() error {
	if r.TemplateID != "" && !govalidator.IsUUID(r.TemplateID) {
		return NewValidationError("template_id must be a valid UUID")
	}
	return nil
}

// BuilderSessionRequest addresses a session without further arguments
// (render, clear).
type BuilderSessionRequest struct {
	SessionID string `json:"session_id"`
}

func (r *BuilderSessionRequest) Validate() error {
	return validateSessionID(r.SessionID)
}

// BuilderInsertRequest is a palette placement: only the kind travels, the
// content and styles come from the registry defaults.
type BuilderInsertRequest struct {
	SessionID string           `json:"session_id"`
	Kind      string           `json:"kind"`
	Target    signature.Target `json:"target"`
}

func (r *BuilderInsertRequest) Validate() error {
	if err := validateSessionID(r.SessionID); err != nil {
		return err
	}
	if _, err := signature.ParseKind(r.Kind); err != nil {
		return NewValidationError(err.Error())
	}
	if r.Target.Column < 0 {
		return NewValidationError("target.column must be zero or positive")
	}
	return nil
}

type BuilderUpdateRequest struct {
	SessionID string          `json:"session_id"`
	BlockID   string          `json:"block_id"`
	Patch     signature.Patch `json:"patch"`
}

func (r *BuilderUpdateRequest) Validate() error {
	if err := validateSessionID(r.SessionID); err != nil {
		return err
	}
	return validateBlockID("block_id", r.BlockID)
}

type BuilderDeleteRequest struct {
	SessionID string `json:"session_id"`
	BlockID   string `json:"block_id"`
}

func (r *BuilderDeleteRequest) Validate() error {
	if err := validateSessionID(r.SessionID); err != nil {
		return err
	}
	return validateBlockID("block_id", r.BlockID)
}

type BuilderResizeRequest struct {
	SessionID string `json:"session_id"`
	LayoutID  string `json:"layout_id"`
	Columns   int    `json:"columns"`
}

func (r *BuilderResizeRequest) Validate() error {
	if err := validateSessionID(r.SessionID); err != nil {
		return err
	}
	if err := validateBlockID("layout_id", r.LayoutID); err != nil {
		return err
	}
	if r.Columns < 1 || r.Columns > signature.MaxColumns {
		return NewValidationError(fmt.Sprintf("columns must be between 1 and %d", signature.MaxColumns))
	}
	return nil
}

type BuilderSelectRequest struct {
	SessionID string `json:"session_id"`
	BlockID   string `json:"block_id"`
}

func (r *BuilderSelectRequest) Validate() error {
	if err := validateSessionID(r.SessionID); err != nil {
		return err
	}
	return validateBlockID("block_id", r.BlockID)
}

// BuilderSaveRequest leaves name checks to the service, which must reject an
// untitled save before touching storage whatever the caller.
type BuilderSaveRequest struct {
	SessionID string `json:"session_id"`
	Name      string `json:"name"`
}

func (r *BuilderSaveRequest) Validate() error {
	return validateSessionID(r.SessionID)
}

// BuilderSessionStore keeps sessions between requests. Get returns
// *ErrSessionNotFound for unknown or expired ids.
type BuilderSessionStore interface {
	Get(ctx context.Context, id string) (*BuilderSession, error)
	Put(ctx context.Context, session *BuilderSession) error
	Delete(ctx context.Context, id string) error
}

type BuilderService interface {
	Open(ctx context.Context, templateID string) (*BuilderState, error)
	State(ctx context.Context, sessionID string) (*BuilderState, error)
	Insert(ctx context.Context, req *BuilderInsertRequest) (*BuilderState, error)
	Update(ctx context.Context, req *BuilderUpdateRequest) (*BuilderState, error)
	Delete(ctx context.Context, req *BuilderDeleteRequest) (*BuilderState, error)
	Resize(ctx context.Context, req *BuilderResizeRequest) (*BuilderState, error)
	Select(ctx context.Context, req *BuilderSelectRequest) (*BuilderState, error)
	Clear(ctx context.Context, sessionID string) (*BuilderState, error)

	// Save renders the session's tree and creates or updates its template.
	// The session is left untouched when the save fails.
	Save(ctx context.Context, sessionID, name string) (*SignatureTemplate, error)
}
