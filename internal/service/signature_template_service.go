package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/relaydesk/relaydesk/internal/domain"
	"github.com/relaydesk/relaydesk/pkg/logger"
	"github.com/relaydesk/relaydesk/pkg/signature"
	"github.com/relaydesk/relaydesk/pkg/tracing"
)

const signatureTemplateServiceName = "SignatureTemplateService"

type SignatureTemplateService struct {
	repo         domain.SignatureTemplateRepository
	placeholders *signature.PlaceholderEngine
	logger       logger.Logger
}

func NewSignatureTemplateService(repo domain.SignatureTemplateRepository, logger logger.Logger) *SignatureTemplateService {
	return &SignatureTemplateService{
		repo:         repo,
		placeholders: signature.NewPlaceholderEngine(),
		logger:       logger,
	}
}

// CreateTemplate rejects an invalid name before anything is rendered or
// stored.
func (s *SignatureTemplateService) CreateTemplate(ctx context.Context, name string, tree signature.Tree) (*domain.SignatureTemplate, error) {
	if err := domain.ValidateTemplateName(name); err != nil {
		return nil, err
	}
	if err := signature.Validate(tree); err != nil {
		return nil, domain.NewValidationError(err.Error())
	}

	ctx, span := tracing.StartServiceSpan(ctx, signatureTemplateServiceName, "CreateTemplate")
	var err error
	defer func() { tracing.EndSpan(span, err) }()

	if tree == nil {
		tree = signature.Tree{}
	}
	template := &domain.SignatureTemplate{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(name),
		HTMLContent: signature.Render(tree),
		Tree:        tree,
	}
	tracing.AddAttribute(ctx, "template_id", template.ID)
	tracing.AddAttribute(ctx, "blocks", signature.CountBlocks(tree))

	if err = s.repo.CreateTemplate(ctx, template); err != nil {
		s.logger.WithField("template_id", template.ID).Error(fmt.Sprintf("Failed to create signature template: %v", err))
		return nil, fmt.Errorf("failed to create signature template: %w", err)
	}

	s.logger.WithFields(map[string]interface{}{
		"template_id": template.ID,
		"name":        template.Name,
	}).Info("Signature template created")
	return template, nil
}

func (s *SignatureTemplateService) GetTemplate(ctx context.Context, id string) (*domain.SignatureTemplate, error) {
	return tracing.TraceMethodWithResult(ctx, signatureTemplateServiceName, "GetTemplate", func(ctx context.Context) (*domain.SignatureTemplate, error) {
		template, err := s.repo.GetTemplateByID(ctx, id)
		if err != nil {
			if _, ok := err.(*domain.ErrTemplateNotFound); ok {
				return nil, err
			}
			s.logger.WithField("template_id", id).Error(fmt.Sprintf("Failed to get signature template: %v", err))
			return nil, fmt.Errorf("failed to get signature template: %w", err)
		}
		return template, nil
	})
}

func (s *SignatureTemplateService) ListTemplates(ctx context.Context, limit, offset int) ([]*domain.SignatureTemplate, error) {
	if limit <= 0 {
		limit = domain.DefaultListLimit
	}
	if limit > domain.MaxListLimit {
		limit = domain.MaxListLimit
	}
	if offset < 0 {
		offset = 0
	}

	return tracing.TraceMethodWithResult(ctx, signatureTemplateServiceName, "ListTemplates", func(ctx context.Context) ([]*domain.SignatureTemplate, error) {
		templates, err := s.repo.ListTemplates(ctx, limit, offset)
		if err != nil {
			s.logger.Error(fmt.Sprintf("Failed to list signature templates: %v", err))
			return nil, fmt.Errorf("failed to list signature templates: %w", err)
		}
		return templates, nil
	})
}

// UpdateTemplate renames a template and/or replaces its tree. A new tree is
// rendered in the same call so the stored HTML always matches it.
func (s *SignatureTemplateService) UpdateTemplate(ctx context.Context, req *domain.UpdateSignatureTemplateRequest) (*domain.SignatureTemplate, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	return tracing.TraceMethodWithResult(ctx, signatureTemplateServiceName, "UpdateTemplate", func(ctx context.Context) (*domain.SignatureTemplate, error) {
		var update domain.SignatureTemplateUpdate
		if req.Name != nil {
			name := strings.TrimSpace(*req.Name)
			update.Name = &name
		}
		if req.Tree != nil {
			tree := *req.Tree
			if tree == nil {
				tree = signature.Tree{}
			}
			html := signature.Render(tree)
			update.Tree = tree
			update.HTMLContent = &html
		}

		if err := s.repo.UpdateTemplate(ctx, req.ID, update); err != nil {
			if _, ok := err.(*domain.ErrTemplateNotFound); ok {
				return nil, err
			}
			s.logger.WithField("template_id", req.ID).Error(fmt.Sprintf("Failed to update signature template: %v", err))
			return nil, fmt.Errorf("failed to update signature template: %w", err)
		}

		template, err := s.repo.GetTemplateByID(ctx, req.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to reload signature template: %w", err)
		}
		return template, nil
	})
}

func (s *SignatureTemplateService) DeleteTemplate(ctx context.Context, id string) error {
	ctx, span := tracing.StartServiceSpan(ctx, signatureTemplateServiceName, "DeleteTemplate")
	err := s.repo.DeleteTemplate(ctx, id)
	tracing.EndSpan(span, err)

	if err != nil {
		if _, ok := err.(*domain.ErrTemplateNotFound); ok {
			return err
		}
		s.logger.WithField("template_id", id).Error(fmt.Sprintf("Failed to delete signature template: %v", err))
		return fmt.Errorf("failed to delete signature template: %w", err)
	}
	return nil
}

func (s *SignatureTemplateService) RenderTree(ctx context.Context, tree signature.Tree, minify bool) (string, error) {
	if err := signature.Validate(tree); err != nil {
		return "", domain.NewValidationError(err.Error())
	}
	if !minify {
		return signature.Render(tree), nil
	}

	html, err := signature.RenderMinified(tree)
	if err != nil {
		s.logger.Warn(fmt.Sprintf("Failed to minify signature: %v", err))
		return "", fmt.Errorf("failed to minify signature: %w", err)
	}
	return html, nil
}

// PreviewTemplate fills the placeholders of the stored HTML. The stored
// template is not modified.
func (s *SignatureTemplateService) PreviewTemplate(ctx context.Context, id string, data signature.PlaceholderData) (string, error) {
	template, err := s.GetTemplate(ctx, id)
	if err != nil {
		return "", err
	}

	html, err := s.placeholders.Apply(ctx, template.HTMLContent, data)
	if err != nil {
		s.logger.WithField("template_id", id).Warn(fmt.Sprintf("Failed to apply placeholders: %v", err))
		return "", fmt.Errorf("failed to apply placeholders: %w", err)
	}
	return html, nil
}

func (s *SignatureTemplateService) CompileTemplateMJML(ctx context.Context, id string) (*signature.CompileResult, error) {
	template, err := s.GetTemplate(ctx, id)
	if err != nil {
		return nil, err
	}

	result := signature.CompileMJML(ctx, template.Tree)
	if !result.Success && result.Error != nil {
		s.logger.WithField("template_id", id).Warn(fmt.Sprintf("MJML compilation failed: %s", result.Error.Message))
	}
	return result, nil
}
