package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finbooks-io/finbooks/internal/apperrors"
	"github.com/finbooks-io/finbooks/internal/core/domain"
	portsrepo "github.com/finbooks-io/finbooks/internal/core/ports/repositories"
	portssvc "github.com/finbooks-io/finbooks/internal/core/ports/services"
	"github.com/finbooks-io/finbooks/internal/dto"
	"github.com/finbooks-io/finbooks/internal/utils/accounting"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// journalService implements the draft -> posted journal entry engine.
type journalService struct {
	BaseService
	journalRepo     portsrepo.JournalRepository
	numberAllocator portsrepo.EntryNumberAllocator
	accountSvc      portssvc.AccountService
	currencySvc     portssvc.CurrencyService
	rateSvc         portssvc.ExchangeRateService
	fiscalSvc       portssvc.FiscalService
	publisher       portssvc.EventPublisher
}

// NewJournalService creates a new JournalService. publisher may be nil, in
// which case posted events are not emitted.
func NewJournalService(
	journalRepo portsrepo.JournalRepository,
	numberAllocator portsrepo.EntryNumberAllocator,
	accountSvc portssvc.AccountService,
	currencySvc portssvc.CurrencyService,
	rateSvc portssvc.ExchangeRateService,
	fiscalSvc portssvc.FiscalService,
	publisher portssvc.EventPublisher,
) portssvc.JournalService {
	return &journalService{
		journalRepo:     journalRepo,
		numberAllocator: numberAllocator,
		accountSvc:      accountSvc,
		currencySvc:     currencySvc,
		rateSvc:         rateSvc,
		fiscalSvc:       fiscalSvc,
		publisher:       publisher,
	}
}

var _ portssvc.JournalService = (*journalService)(nil)

// resolvePeriodFor maps an entry date onto its fiscal period. When the caller
// pinned a period explicitly, the entry date must still fall inside it.
func (s *journalService) resolvePeriodFor(ctx context.Context, tenantID, fiscalPeriodID string, entryDate time.Time) (*domain.FiscalPeriod, error) {
	if fiscalPeriodID == "" {
		return s.fiscalSvc.ResolvePeriod(ctx, tenantID, entryDate)
	}

	period, err := s.fiscalSvc.GetFiscalPeriodByID(ctx, tenantID, fiscalPeriodID)
	if err != nil {
		return nil, err
	}
	if !period.Contains(entryDate) {
		return nil, fmt.Errorf("%w: entry date %s is outside period %s [%s, %s]",
			apperrors.ErrValidation,
			entryDate.Format("2006-01-02"), period.Code,
			period.StartDate.Format("2006-01-02"), period.EndDate.Format("2006-01-02"))
	}
	return period, nil
}

// buildLines converts submitted line requests into domain lines, validates
// the accounts and currencies they reference, converts each side into the
// tenant base currency, and enforces the balance invariants on the converted
// totals.
func (s *journalService) buildLines(ctx context.Context, tenantID, entryID string, reqs []dto.JournalLineRequest, entryDate time.Time, creatorUserID string, now time.Time) ([]domain.JournalLine, error) {
	// Line shape is checked before any lookups so a malformed line is
	// reported ahead of an unknown account or currency.
	for i, lr := range reqs {
		if lr.Debit.IsNegative() || lr.Credit.IsNegative() {
			return nil, domain.UnbalancedLineError{Line: i}
		}
		if lr.Debit.IsPositive() == lr.Credit.IsPositive() {
			return nil, domain.UnbalancedLineError{Line: i}
		}
	}

	accountIDs := make([]string, 0, len(reqs))
	currencyCodes := make([]string, 0, len(reqs))
	for _, lr := range reqs {
		accountIDs = append(accountIDs, lr.AccountID)
		currencyCodes = append(currencyCodes, lr.CurrencyCode)
	}
	accountIDs = uniqueStrings(accountIDs)
	currencyCodes = uniqueStrings(currencyCodes)

	accounts, err := s.accountSvc.GetAccountsByIDs(ctx, tenantID, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch accounts: %w", err)
	}
	for _, id := range accountIDs {
		acc, found := accounts[id]
		if !found {
			// The repository is tenant scoped, so an unknown ID is either
			// nonexistent or belongs to another tenant. Both are refused the
			// same way.
			return nil, fmt.Errorf("%w: account %s", domain.ErrCrossTenantReference, id)
		}
		if !acc.IsActive {
			return nil, fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, id)
		}
	}

	currencies, err := s.currencySvc.GetCurrenciesByCodes(ctx, tenantID, currencyCodes)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch currencies: %w", err)
	}
	rates := make(map[string]decimal.Decimal, len(currencyCodes))
	for _, code := range currencyCodes {
		cur, found := currencies[code]
		if !found {
			return nil, fmt.Errorf("%w: unknown currency %s", apperrors.ErrValidation, code)
		}
		if !cur.IsActive {
			return nil, fmt.Errorf("%w: currency %s is inactive", apperrors.ErrValidation, code)
		}
		rate, err := s.rateSvc.RateAt(ctx, tenantID, code, entryDate)
		if err != nil {
			return nil, err
		}
		rates[code] = rate
	}

	lines := make([]domain.JournalLine, len(reqs))
	baseLines := make([]domain.JournalLine, len(reqs))
	for i, lr := range reqs {
		rate := rates[lr.CurrencyCode]
		lines[i] = domain.JournalLine{
			LineID:       uuid.NewString(),
			EntryID:      entryID,
			AccountID:    lr.AccountID,
			CurrencyCode: lr.CurrencyCode,
			Debit:        lr.Debit,
			Credit:       lr.Credit,
			Description:  lr.Description,
			LineNumber:   i + 1,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     creatorUserID,
				LastUpdatedAt: now,
				LastUpdatedBy: creatorUserID,
			},
		}
		// The balance invariant holds over base currency amounts; converting
		// both sides keeps per-line exclusivity intact since rates are
		// strictly positive.
		baseLines[i] = domain.JournalLine{
			Debit:  lr.Debit.Mul(rate),
			Credit: lr.Credit.Mul(rate),
		}
		if lines[i].IsDebit() {
			lines[i].AmountBase = baseLines[i].Debit
		} else {
			lines[i].AmountBase = baseLines[i].Credit
		}
	}

	if err := accounting.ValidateLines(baseLines); err != nil {
		return nil, err
	}
	return lines, nil
}

// CreateDraft validates and persists a new draft entry.
func (s *journalService) CreateDraft(ctx context.Context, tenantID string, req dto.CreateJournalEntryRequest, creatorUserID string) (*domain.JournalEntry, error) {
	reference := domain.EntryReference{Kind: domain.RefManual}
	if req.Reference != nil {
		reference = domain.EntryReference{Kind: req.Reference.Kind, ID: req.Reference.ID}
	}
	if !reference.IsValid() {
		return nil, fmt.Errorf("%w: malformed entry reference", apperrors.ErrValidation)
	}

	period, err := s.resolvePeriodFor(ctx, tenantID, req.FiscalPeriodID, req.EntryDate)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	entryID := uuid.NewString()

	lines, err := s.buildLines(ctx, tenantID, entryID, req.Lines, req.EntryDate, creatorUserID, now)
	if err != nil {
		return nil, err
	}

	entryNumber, err := s.numberAllocator.AllocateEntryNumber(ctx, tenantID)
	if err != nil {
		s.LogError(ctx, err, "Failed to allocate entry number")
		return nil, fmt.Errorf("failed to allocate entry number: %w", err)
	}

	entry := domain.JournalEntry{
		EntryID:        entryID,
		TenantID:       tenantID,
		EntryNumber:    entryNumber,
		FiscalYearID:   period.FiscalYearID,
		FiscalPeriodID: period.FiscalPeriodID,
		EntryDate:      req.EntryDate,
		Reference:      reference,
		Description:    req.Description,
		Status:         domain.Draft,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.journalRepo.SaveEntry(ctx, entry, lines); err != nil {
		s.LogError(ctx, err, "Failed to save journal entry", slog.String("entry_number", entryNumber))
		return nil, err
	}

	s.LogInfo(ctx, "Draft journal entry created",
		slog.String("entry_id", entryID),
		slog.String("entry_number", entryNumber),
		slog.Int("lines", len(lines)))

	entry.Lines = lines
	return &entry, nil
}

func (s *journalService) GetEntryByID(ctx context.Context, tenantID, entryID string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByID(ctx, tenantID, entryID)
	if err != nil {
		return nil, err
	}
	lines, err := s.journalRepo.FindLinesByEntryID(ctx, entry.EntryID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch entry lines: %w", err)
	}
	entry.Lines = lines
	return entry, nil
}

func (s *journalService) ListEntries(ctx context.Context, tenantID string, params dto.ListJournalEntriesParams) (*dto.ListJournalEntriesResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	var status *domain.EntryStatus
	if params.Status != nil {
		st := domain.EntryStatus(*params.Status)
		status = &st
	}

	entries, nextToken, err := s.journalRepo.ListEntries(ctx, tenantID, limit, params.NextToken, status)
	if err != nil {
		return nil, err
	}

	resp := &dto.ListJournalEntriesResponse{
		Entries:   make([]dto.JournalEntryResponse, len(entries)),
		NextToken: nextToken,
	}
	for i := range entries {
		if params.IncludeLines {
			lines, err := s.journalRepo.FindLinesByEntryID(ctx, entries[i].EntryID)
			if err != nil {
				return nil, fmt.Errorf("failed to fetch lines for entry %s: %w", entries[i].EntryID, err)
			}
			entries[i].Lines = lines
		}
		resp.Entries[i] = dto.ToJournalEntryResponse(&entries[i])
	}
	return resp, nil
}

// UpdateDraft edits a draft entry. A submitted line set replaces the existing
// lines wholesale.
func (s *journalService) UpdateDraft(ctx context.Context, tenantID, entryID string, req dto.UpdateJournalEntryRequest, userID string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByID(ctx, tenantID, entryID)
	if err != nil {
		return nil, err
	}
	if entry.IsPosted() {
		return nil, fmt.Errorf("%w: entry %s", domain.ErrEntryAlreadyPosted, entryID)
	}

	if req.EntryDate != nil {
		entry.EntryDate = *req.EntryDate
	}
	if req.Description != nil {
		entry.Description = *req.Description
	}

	pinnedPeriodID := ""
	if req.FiscalPeriodID != nil {
		pinnedPeriodID = *req.FiscalPeriodID
	}
	period, err := s.resolvePeriodFor(ctx, tenantID, pinnedPeriodID, entry.EntryDate)
	if err != nil {
		return nil, err
	}
	if period.IsLocked {
		return nil, fmt.Errorf("%w: period %s", domain.ErrPeriodLocked, period.Code)
	}
	entry.FiscalYearID = period.FiscalYearID
	entry.FiscalPeriodID = period.FiscalPeriodID

	now := time.Now().UTC()
	var lines []domain.JournalLine
	if req.Lines != nil {
		lines, err = s.buildLines(ctx, tenantID, entryID, req.Lines, entry.EntryDate, userID, now)
		if err != nil {
			return nil, err
		}
	} else {
		lines, err = s.journalRepo.FindLinesByEntryID(ctx, entryID)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch entry lines: %w", err)
		}
	}

	entry.LastUpdatedAt = now
	entry.LastUpdatedBy = userID

	if err := s.journalRepo.UpdateDraft(ctx, *entry, lines); err != nil {
		s.LogError(ctx, err, "Failed to update draft entry", slog.String("entry_id", entryID))
		return nil, err
	}

	entry.Lines = lines
	return entry, nil
}

// Post performs the draft -> posted transition. The repository executes the
// transition atomically under a row lock; the checks here only fail fast on
// state that is already visible.
func (s *journalService) Post(ctx context.Context, tenantID, entryID, actingUserID string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByID(ctx, tenantID, entryID)
	if err != nil {
		return nil, err
	}
	if entry.IsPosted() {
		return nil, fmt.Errorf("%w: entry %s", domain.ErrEntryAlreadyPosted, entryID)
	}

	year, err := s.fiscalSvc.GetFiscalYearByID(ctx, tenantID, entry.FiscalYearID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch fiscal year: %w", err)
	}
	if year.IsClosed {
		return nil, fmt.Errorf("%w: fiscal year %s", domain.ErrFiscalYearClosed, year.FiscalYearID)
	}

	postedAt := time.Now().UTC()
	posted, err := s.journalRepo.PostEntry(ctx, tenantID, entryID, actingUserID, postedAt)
	if err != nil {
		s.LogError(ctx, err, "Failed to post journal entry", slog.String("entry_id", entryID))
		return nil, err
	}

	lines, err := s.journalRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch entry lines: %w", err)
	}
	posted.Lines = lines

	s.LogInfo(ctx, "Journal entry posted",
		slog.String("entry_id", entryID),
		slog.String("entry_number", posted.EntryNumber),
		slog.String("posted_by", actingUserID))

	if s.publisher != nil {
		s.publisher.PublishJournalEntryPosted(ctx, domain.JournalEntryPosted{
			EntryID:     posted.EntryID,
			TenantID:    posted.TenantID,
			EntryNumber: posted.EntryNumber,
			PostedBy:    actingUserID,
			PostedAt:    postedAt,
		})
	}

	return posted, nil
}

// DeleteDraft removes a draft entry and its lines.
func (s *journalService) DeleteDraft(ctx context.Context, tenantID, entryID, userID string) error {
	if err := s.journalRepo.DeleteDraft(ctx, tenantID, entryID); err != nil {
		s.LogError(ctx, err, "Failed to delete draft entry", slog.String("entry_id", entryID))
		return err
	}
	s.LogInfo(ctx, "Draft journal entry deleted", slog.String("entry_id", entryID), slog.String("deleted_by", userID))
	return nil
}

// Reverse creates a new draft that offsets a posted entry line for line:
// every debit becomes a credit of the same amount and vice versa. The draft
// references the original entry and goes through the normal posting flow.
func (s *journalService) Reverse(ctx context.Context, tenantID, entryID string, reversalDate time.Time, userID string) (*domain.JournalEntry, error) {
	original, err := s.GetEntryByID(ctx, tenantID, entryID)
	if err != nil {
		return nil, err
	}
	if !original.IsPosted() {
		return nil, fmt.Errorf("%w: only posted entries can be reversed", apperrors.ErrConflict)
	}

	period, err := s.fiscalSvc.ResolvePeriod(ctx, tenantID, reversalDate)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	reversalID := uuid.NewString()

	lines := make([]domain.JournalLine, len(original.Lines))
	for i, l := range original.Lines {
		lines[i] = domain.JournalLine{
			LineID:       uuid.NewString(),
			EntryID:      reversalID,
			AccountID:    l.AccountID,
			CurrencyCode: l.CurrencyCode,
			Debit:        l.Credit,
			Credit:       l.Debit,
			AmountBase:   l.AmountBase,
			Description:  l.Description,
			LineNumber:   l.LineNumber,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
	}

	entryNumber, err := s.numberAllocator.AllocateEntryNumber(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate entry number: %w", err)
	}

	reversal := domain.JournalEntry{
		EntryID:        reversalID,
		TenantID:       tenantID,
		EntryNumber:    entryNumber,
		FiscalYearID:   period.FiscalYearID,
		FiscalPeriodID: period.FiscalPeriodID,
		EntryDate:      reversalDate,
		Reference:      domain.EntryReference{Kind: domain.RefReversal, ID: original.EntryID},
		Description:    fmt.Sprintf("Reversal of %s", original.EntryNumber),
		Status:         domain.Draft,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.journalRepo.SaveEntry(ctx, reversal, lines); err != nil {
		s.LogError(ctx, err, "Failed to save reversal entry", slog.String("original_entry_id", entryID))
		return nil, err
	}

	s.LogInfo(ctx, "Reversal draft created",
		slog.String("entry_id", reversalID),
		slog.String("reverses", original.EntryNumber))

	reversal.Lines = lines
	return &reversal, nil
}

// uniqueStrings returns the distinct values of in, preserving first-seen order.
func uniqueStrings(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
