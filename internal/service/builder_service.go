package service

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/relaydesk/relaydesk/internal/domain"
	"github.com/relaydesk/relaydesk/pkg/logger"
	"github.com/relaydesk/relaydesk/pkg/signature"
	"github.com/relaydesk/relaydesk/pkg/tracing"
)

const (
	builderServiceName = "BuilderService"
	builderLockStripes = 64
)

// BuilderService drives editing sessions. Each operation loads the session,
// applies one change and stores it again; operations on the same session are
// serialized within this process.
type BuilderService struct {
	store     domain.BuilderSessionStore
	templates domain.SignatureTemplateService
	logger    logger.Logger
	locks     [builderLockStripes]sync.Mutex
	now       func() time.Time
}

func NewBuilderService(store domain.BuilderSessionStore, templates domain.SignatureTemplateService, logger logger.Logger) *BuilderService {
	return &BuilderService{
		store:     store,
		templates: templates,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *BuilderService) lock(sessionID string) func() {
	h := fnv.New32a()
	h.Write([]byte(sessionID))
	mu := &s.locks[h.Sum32()%builderLockStripes]
	mu.Lock()
	return mu.Unlock
}

// Open starts a session on an empty tree, or on the tree of a saved template.
func (s *BuilderService) Open(ctx context.Context, templateID string) (*domain.BuilderState, error) {
	req := domain.BuilderOpenRequest{TemplateID: templateID}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	ctx, span := tracing.StartServiceSpan(ctx, builderServiceName, "Open")
	var err error
	defer func() { tracing.EndSpan(span, err) }()

	session := &domain.BuilderSession{
		ID:        uuid.NewString(),
		Session:   signature.NewSession(signature.Tree{}),
		UpdatedAt: s.now(),
	}

	if templateID != "" {
		var template *domain.SignatureTemplate
		template, err = s.templates.GetTemplate(ctx, templateID)
		if err != nil {
			return nil, err
		}
		session.TemplateID = template.ID
		session.TemplateName = template.Name
		session.Session.Load(template.Tree)
	}

	if err = s.store.Put(ctx, session); err != nil {
		s.logger.WithField("session_id", session.ID).Error(fmt.Sprintf("Failed to store builder session: %v", err))
		return nil, fmt.Errorf("failed to store builder session: %w", err)
	}

	s.logger.WithFields(map[string]interface{}{
		"session_id":  session.ID,
		"template_id": session.TemplateID,
	}).Debug("Builder session opened")
	return domain.NewBuilderState(session, false), nil
}

func (s *BuilderService) State(ctx context.Context, sessionID string) (*domain.BuilderState, error) {
	req := domain.BuilderSessionRequest{SessionID: sessionID}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	session, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, s.storeError(sessionID, err)
	}
	return domain.NewBuilderState(session, false), nil
}

// Insert places a new block built from the palette defaults. A stale target
// leaves the tree unchanged and reports Changed false.
func (s *BuilderService) Insert(ctx context.Context, req *domain.BuilderInsertRequest) (*domain.BuilderState, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var insertedID string
	state, err := s.apply(ctx, "Insert", req.SessionID, func(session *signature.Session) (bool, error) {
		block, err := session.Place(req.Kind, req.Target)
		if err != nil {
			return false, domain.NewValidationError(err.Error())
		}
		if block == nil {
			return false, nil
		}
		insertedID = block.GetID()
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	state.InsertedID = insertedID
	return state, nil
}

func (s *BuilderService) Update(ctx context.Context, req *domain.BuilderUpdateRequest) (*domain.BuilderState, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.apply(ctx, "Update", req.SessionID, func(session *signature.Session) (bool, error) {
		return session.Update(req.BlockID, req.Patch), nil
	})
}

func (s *BuilderService) Delete(ctx context.Context, req *domain.BuilderDeleteRequest) (*domain.BuilderState, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.apply(ctx, "Delete", req.SessionID, func(session *signature.Session) (bool, error) {
		return session.Delete(req.BlockID), nil
	})
}

func (s *BuilderService) Resize(ctx context.Context, req *domain.BuilderResizeRequest) (*domain.BuilderState, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.apply(ctx, "Resize", req.SessionID, func(session *signature.Session) (bool, error) {
		return session.ResizeColumns(req.LayoutID, req.Columns), nil
	})
}

// Select ignores ids that are not in the tree.
func (s *BuilderService) Select(ctx context.Context, req *domain.BuilderSelectRequest) (*domain.BuilderState, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.apply(ctx, "Select", req.SessionID, func(session *signature.Session) (bool, error) {
		before := session.SelectedID()
		session.Select(req.BlockID)
		return session.SelectedID() != before, nil
	})
}

func (s *BuilderService) Clear(ctx context.Context, sessionID string) (*domain.BuilderState, error) {
	req := domain.BuilderSessionRequest{SessionID: sessionID}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.apply(ctx, "Clear", sessionID, func(session *signature.Session) (bool, error) {
		if session.SelectedID() == "" {
			return false, nil
		}
		session.Clear()
		return true, nil
	})
}

// Save checks the name before the session or the template store is touched,
// so an untitled save never reaches persistence. The first save creates a
// template; later saves update it.
func (s *BuilderService) Save(ctx context.Context, sessionID, name string) (*domain.SignatureTemplate, error) {
	if err := domain.ValidateTemplateName(name); err != nil {
		return nil, err
	}
	req := domain.BuilderSaveRequest{SessionID: sessionID, Name: name}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	ctx, span := tracing.StartServiceSpan(ctx, builderServiceName, "Save")
	var err error
	defer func() { tracing.EndSpan(span, err) }()

	unlock := s.lock(sessionID)
	defer unlock()

	var session *domain.BuilderSession
	session, err = s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, s.storeError(sessionID, err)
	}

	var template *domain.SignatureTemplate
	template, err = s.saveTemplate(ctx, session, name)
	if err != nil {
		return nil, err
	}

	session.TemplateID = template.ID
	session.TemplateName = template.Name
	session.UpdatedAt = s.now()
	if putErr := s.store.Put(ctx, session); putErr != nil {
		// The template is saved; the next save from a stale session creates a
		// second template instead of updating this one.
		s.logger.WithFields(map[string]interface{}{
			"session_id":  sessionID,
			"template_id": template.ID,
		}).Warn(fmt.Sprintf("Failed to link builder session to saved template: %v", putErr))
	}

	s.logger.WithFields(map[string]interface{}{
		"session_id":  sessionID,
		"template_id": template.ID,
	}).Info("Builder session saved")
	return template, nil
}

func (s *BuilderService) saveTemplate(ctx context.Context, session *domain.BuilderSession, name string) (*domain.SignatureTemplate, error) {
	tree := session.Session.Tree()
	if session.TemplateID == "" {
		return s.templates.CreateTemplate(ctx, name, tree)
	}

	template, err := s.templates.UpdateTemplate(ctx, &domain.UpdateSignatureTemplateRequest{
		ID:   session.TemplateID,
		Name: &name,
		Tree: &tree,
	})
	var notFound *domain.ErrTemplateNotFound
	if errors.As(err, &notFound) {
		s.logger.WithField("template_id", session.TemplateID).Info("Saved template was deleted, creating a new one")
		return s.templates.CreateTemplate(ctx, name, tree)
	}
	return template, err
}

// apply runs one editing operation. The session is written back only when
// the operation changed it.
func (s *BuilderService) apply(ctx context.Context, op, sessionID string, fn func(*signature.Session) (bool, error)) (*domain.BuilderState, error) {
	ctx, span := tracing.StartServiceSpan(ctx, builderServiceName, op)
	var err error
	defer func() { tracing.EndSpan(span, err) }()

	unlock := s.lock(sessionID)
	defer unlock()

	var session *domain.BuilderSession
	session, err = s.store.Get(ctx, sessionID)
	if err != nil {
		err = s.storeError(sessionID, err)
		return nil, err
	}

	var changed bool
	changed, err = fn(session.Session)
	if err != nil {
		return nil, err
	}
	tracing.AddAttribute(ctx, "changed", changed)

	if changed {
		session.UpdatedAt = s.now()
		if err = s.store.Put(ctx, session); err != nil {
			s.logger.WithFields(map[string]interface{}{
				"session_id": sessionID,
				"operation":  op,
			}).Error(fmt.Sprintf("Failed to store builder session: %v", err))
			err = fmt.Errorf("failed to store builder session: %w", err)
			return nil, err
		}
	}

	return domain.NewBuilderState(session, changed), nil
}

func (s *BuilderService) storeError(sessionID string, err error) error {
	if _, ok := err.(*domain.ErrSessionNotFound); ok {
		return err
	}
	s.logger.WithField("session_id", sessionID).Error(fmt.Sprintf("Failed to load builder session: %v", err))
	return fmt.Errorf("failed to load builder session: %w", err)
}
