package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	netmail "net/mail"
	"strings"
	"time"

	"paperscan/internal/mail"
	"paperscan/internal/model"
	"paperscan/internal/repository"
)

var (
	ErrRateLimited     = errors.New("too many messages, try again later")
	ErrContactNotFound = errors.New("contact message not found")
)

const (
	contactRateWindow = 5 * time.Minute
	contactRateLimit  = 3

	// responseETA is quoted back to the sender in the receipt and the
	// confirmation email.
	responseETA = "24-48h"
)

// suspiciousNames get the honeypot treatment: a polite success with nothing
// persisted.
var suspiciousNames = map[string]struct{}{
	"admin": {},
	"test":  {},
	"robot": {},
	"bot":   {},
}

// ContactRequest is one submission of the public contact form.
type ContactRequest struct {
	Name      string
	Email     string
	Subject   model.ContactSubject
	Body      string
	Honeypot  string
	SourceIP  string
	UserAgent string
}

// ContactReceipt is what the sender gets back. Silently-dropped spam gets a
// receipt with no ID so the response shape never reveals the filter.
type ContactReceipt struct {
	ID          int64  `json:"id,omitempty"`
	ResponseETA string `json:"response_eta"`
}

// ContactListResult is the service-level DTO for message listings.
type ContactListResult struct {
	Items []model.ContactMessage `json:"data"`
	Total int                    `json:"total"`
}

// ContactService defines the use cases for the support inbox.
type ContactService interface {
	// Submit validates and stores one contact message, then notifies the
	// admin and confirms to the sender in the background.
	Submit(ctx context.Context, req ContactRequest) (*ContactReceipt, error)

	// Analytics aggregates message counts over the trailing days.
	Analytics(ctx context.Context, days int) (*model.ContactAnalytics, error)

	// Recent returns the newest messages.
	Recent(ctx context.Context, limit int) ([]model.ContactMessage, error)

	// UpdateStatus moves a message to a new triage state.
	UpdateStatus(ctx context.Context, id int64, status model.ContactStatus, responseSent bool) error

	// Search filters messages by term, subject and status.
	Search(ctx context.Context, term string, subject model.ContactSubject, status model.ContactStatus, limit, offset int) (*ContactListResult, error)
}

type contactService struct {
	repo       repository.ContactRepository
	mailer     mail.Mailer
	adminEmail string
}

// NewContactService constructs a new ContactService.
func NewContactService(repo repository.ContactRepository, mailer mail.Mailer, adminEmail string) ContactService {
	return &contactService{repo: repo, mailer: mailer, adminEmail: adminEmail}
}

func (s *contactService) Submit(ctx context.Context, req ContactRequest) (*ContactReceipt, error) {
	name := strings.TrimSpace(req.Name)
	body := strings.TrimSpace(req.Body)
	email := normalizeEmail(req.Email)

	if len(name) < 2 || len(name) > 100 {
		return nil, fmt.Errorf("%w: name must be 2-100 characters", ErrBadInput)
	}
	if _, err := netmail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("%w: invalid email address", ErrBadInput)
	}
	if !model.ValidContactSubject(req.Subject) {
		return nil, fmt.Errorf("%w: unknown subject", ErrBadInput)
	}
	if len(body) < 10 || len(body) > 2000 {
		return nil, fmt.Errorf("%w: message must be 10-2000 characters", ErrBadInput)
	}

	if s.isSpam(req.Honeypot, name) {
		log.Printf("contact: spam dropped email=%s ip=%s", email, req.SourceIP)
		return &ContactReceipt{ResponseETA: responseETA}, nil
	}

	recent, err := s.repo.CountRecentByEmail(ctx, email, contactRateWindow)
	if err != nil {
		return nil, fmt.Errorf("rate limit check: %w", err)
	}
	if recent >= contactRateLimit {
		return nil, ErrRateLimited
	}

	stored, err := s.repo.Insert(ctx, &model.ContactMessage{
		Name:      name,
		Email:     email,
		Subject:   req.Subject,
		Body:      body,
		Status:    model.ContactNew,
		SourceIP:  req.SourceIP,
		UserAgent: req.UserAgent,
	})
	if err != nil {
		return nil, fmt.Errorf("store contact message: %w", err)
	}

	// Reporting rollup is best-effort; the message itself is already safe.
	if err := s.repo.RecordDailyRollup(ctx, stored.CreatedAt, stored.Subject, stored.Status); err != nil {
		log.Printf("contact: analytics rollup failed id=%d err=%v", stored.ID, err)
	}

	s.notifyAsync(stored)

	return &ContactReceipt{ID: stored.ID, ResponseETA: responseETA}, nil
}

func (s *contactService) isSpam(honeypot, name string) bool {
	if strings.TrimSpace(honeypot) != "" {
		return true
	}
	_, suspicious := suspiciousNames[strings.ToLower(name)]
	return suspicious
}

// notifyAsync sends the admin alert and the sender confirmation off the
// request path. Failures are logged only.
func (s *contactService) notifyAsync(msg *model.ContactMessage) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), mailSendTimeout)
		defer cancel()

		if s.adminEmail != "" {
			admin := mail.Message{
				To:      s.adminEmail,
				Subject: fmt.Sprintf("[Contact] %s — %s", msg.Subject, msg.Name),
				Body: fmt.Sprintf("Nouveau message #%d\n\nDe : %s <%s>\nSujet : %s\n\n%s\n",
					msg.ID, msg.Name, msg.Email, msg.Subject, msg.Body),
			}
			if err := s.mailer.Send(ctx, admin); err != nil {
				log.Printf("contact: admin notification failed id=%d err=%v", msg.ID, err)
			}
		}

		confirmation := mail.Message{
			To:      msg.Email,
			Subject: "Nous avons bien reçu votre message",
			Body: fmt.Sprintf("Bonjour %s,\n\n"+
				"Votre message a bien été reçu. Nous vous répondrons sous %s.\n\n"+
				"L'équipe Paper Scanner", msg.Name, responseETA),
		}
		if err := s.mailer.Send(ctx, confirmation); err != nil {
			log.Printf("contact: confirmation failed id=%d err=%v", msg.ID, err)
		}
	}()
}

func (s *contactService) Analytics(ctx context.Context, days int) (*model.ContactAnalytics, error) {
	if days <= 0 {
		days = 30
	}
	if days > 365 {
		days = 365
	}
	return s.repo.Analytics(ctx, days)
}

func (s *contactService) Recent(ctx context.Context, limit int) ([]model.ContactMessage, error) {
	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	return s.repo.Recent(ctx, limit)
}

func (s *contactService) UpdateStatus(ctx context.Context, id int64, status model.ContactStatus, responseSent bool) error {
	if id <= 0 {
		return fmt.Errorf("%w: id is required", ErrBadInput)
	}
	if !model.ValidContactStatus(status) {
		return fmt.Errorf("%w: unknown status", ErrBadInput)
	}

	if err := s.repo.UpdateStatus(ctx, id, status, responseSent); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrContactNotFound
		}
		return err
	}
	return nil
}

func (s *contactService) Search(ctx context.Context, term string, subject model.ContactSubject, status model.ContactStatus, limit, offset int) (*ContactListResult, error) {
	if subject != "" && !model.ValidContactSubject(subject) {
		return nil, fmt.Errorf("%w: unknown subject", ErrBadInput)
	}
	if status != "" && !model.ValidContactStatus(status) {
		return nil, fmt.Errorf("%w: unknown status", ErrBadInput)
	}
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	res, err := s.repo.Search(ctx, repository.ContactSearchQuery{
		Term:    strings.TrimSpace(term),
		Subject: subject,
		Status:  status,
		Page:    repository.PageQuery{Limit: limit, Offset: offset},
	})
	if err != nil {
		return nil, err
	}
	return &ContactListResult{Items: res.Items, Total: res.Total}, nil
}
