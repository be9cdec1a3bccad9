package store

import (
	"context"
	"errors"
	"maps"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"operadoras/internal/domain"
	"operadoras/internal/infra/telemetry"
)

var errNoClient = errors.New("api client is not configured")

// Options configures an OperatorStore.
type Options struct {
	Client   domain.APIClient
	Logger   *zap.Logger
	Metrics  domain.Metrics
	PageSize int
}

// Snapshot is a consistent copy of the store state.
type Snapshot struct {
	Query          domain.Query             `json:"query" yaml:"query"`
	Items          []domain.OperatorSummary `json:"items" yaml:"items"`
	Total          int                      `json:"total" yaml:"total"`
	TotalPages     int                      `json:"totalPages" yaml:"totalPages"`
	Detail         domain.OperatorDetail    `json:"detail" yaml:"detail"`
	ExpenseHistory []domain.Expense         `json:"expenseHistory" yaml:"expenseHistory"`
	ListStatus     domain.RequestStatus     `json:"listStatus" yaml:"listStatus"`
	DetailStatus   domain.RequestStatus     `json:"detailStatus" yaml:"detailStatus"`
}

// OperatorStore holds the operator list and detail state for one session.
//
// The lock is only held while state is read or written; requests run
// without it. Overlapping calls of the same operation are not deduplicated,
// so the call that resolves last wins.
type OperatorStore struct {
	mu sync.RWMutex

	client  domain.APIClient
	logger  *zap.Logger
	metrics domain.Metrics

	query    domain.Query
	items    []domain.OperatorSummary
	total    int
	detail   domain.OperatorDetail
	expenses []domain.Expense

	listStatus   domain.RequestStatus
	detailStatus domain.RequestStatus
}

// NewOperatorStore creates a store positioned on the first page.
func NewOperatorStore(opts Options) *OperatorStore {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	metrics := opts.Metrics
	if metrics == nil {
		metrics = telemetry.NewNoopMetrics()
	}
	pageSize := opts.PageSize
	if pageSize == 0 {
		pageSize = domain.DefaultPageSize
	}
	return &OperatorStore{
		client:   opts.Client,
		logger:   logger.Named("operator-store"),
		metrics:  metrics,
		query:    domain.Query{Page: domain.DefaultPage, PageSize: pageSize}.Normalize(),
		items:    []domain.OperatorSummary{},
		expenses: []domain.Expense{},
	}
}

func (s *OperatorStore) Query() domain.Query {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.query
}

// SetQuery replaces the whole query; out-of-range values are clamped.
func (s *OperatorStore) SetQuery(query domain.Query) {
	s.mu.Lock()
	s.query = query.Normalize()
	s.mu.Unlock()
}

func (s *OperatorStore) SetPage(page int) {
	s.mu.Lock()
	s.query.Page = page
	s.query = s.query.Normalize()
	s.mu.Unlock()
}

func (s *OperatorStore) SetPageSize(pageSize int) {
	s.mu.Lock()
	s.query.PageSize = pageSize
	s.query = s.query.Normalize()
	s.mu.Unlock()
}

func (s *OperatorStore) SetSearchText(text string) {
	s.mu.Lock()
	s.query.SearchText = text
	s.mu.Unlock()
}

func (s *OperatorStore) Items() []domain.OperatorSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.OperatorSummary(nil), s.items...)
}

func (s *OperatorStore) Total() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.total
}

// TotalPages is ceil(total/pageSize), or 1 when the page size is zero.
func (s *OperatorStore) TotalPages() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.TotalPages(s.total, s.query.PageSize)
}

func (s *OperatorStore) Detail() domain.OperatorDetail {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.detail)
}

func (s *OperatorStore) ExpenseHistory() []domain.Expense {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Expense{}, s.expenses...)
}

func (s *OperatorStore) ListStatus() domain.RequestStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listStatus
}

func (s *OperatorStore) DetailStatus() domain.RequestStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.detailStatus
}

func (s *OperatorStore) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Query:          s.query,
		Items:          append([]domain.OperatorSummary{}, s.items...),
		Total:          s.total,
		TotalPages:     domain.TotalPages(s.total, s.query.PageSize),
		Detail:         maps.Clone(s.detail),
		ExpenseHistory: append([]domain.Expense{}, s.expenses...),
		ListStatus:     s.listStatus,
		DetailStatus:   s.detailStatus,
	}
}

// ListOperators fetches the page described by the current query. Failures
// are reported through ListStatus; the previous items stay in place.
func (s *OperatorStore) ListOperators(ctx context.Context) {
	s.mu.Lock()
	s.listStatus = domain.RequestStatus{Loading: true}
	query := s.query
	s.mu.Unlock()

	started := s.begin(domain.OperationList)
	var err error
	defer func() {
		s.mu.Lock()
		s.listStatus.Loading = false
		s.mu.Unlock()
		s.end(domain.OperationList, started, err)
	}()

	var result domain.ListResult
	result, err = s.fetchList(ctx, query)
	if err != nil {
		apiErr := domain.AsAPIError(err)
		s.mu.Lock()
		s.listStatus.ErrorMessage = apiErr.Message()
		s.listStatus.ErrorCode = domain.StatusFrom(apiErr)
		s.mu.Unlock()
		s.logger.Warn("list operators failed",
			telemetry.EventField(telemetry.EventListFailure),
			zap.Int("page", query.Page),
			zap.Error(err),
		)
		return
	}

	s.mu.Lock()
	s.items = result.Items
	s.total = result.Total
	s.mu.Unlock()
	s.logger.Debug("list operators succeeded",
		telemetry.EventField(telemetry.EventListSuccess),
		zap.Int("page", query.Page),
		zap.Int("items", len(result.Items)),
		zap.Int("total", result.Total),
	)
}

func (s *OperatorStore) fetchList(ctx context.Context, query domain.Query) (domain.ListResult, error) {
	if s.client == nil {
		return domain.ListResult{}, domain.RequestError("list operators", errNoClient)
	}
	resp, err := s.client.Get(ctx, domain.OperatorsPath, query.Params())
	if err != nil {
		return domain.ListResult{}, err
	}
	result, shape, err := decodeList(resp.Body)
	if err != nil {
		return domain.ListResult{}, invalidBody("list operators", resp.Status, err)
	}
	if shape == shapeUnknown {
		s.logger.Warn("unexpected collection shape, using item count as total",
			telemetry.EventField(telemetry.EventUnknownShape),
			telemetry.StatusField(resp.Status),
		)
	}
	return result, nil
}

// LoadOperatorDetail fetches an operator and its expense history together.
// Both requests must succeed; otherwise neither field is populated.
func (s *OperatorStore) LoadOperatorDetail(ctx context.Context, id string) {
	s.mu.Lock()
	s.detailStatus = domain.RequestStatus{Loading: true}
	s.detail = nil
	s.expenses = []domain.Expense{}
	s.mu.Unlock()

	started := s.begin(domain.OperationDetail)
	var err error
	defer func() {
		s.mu.Lock()
		s.detailStatus.Loading = false
		s.mu.Unlock()
		s.end(domain.OperationDetail, started, err)
	}()

	var (
		detail   domain.OperatorDetail
		expenses []domain.Expense
	)
	detail, expenses, err = s.fetchDetail(ctx, id)
	if err != nil {
		s.mu.Lock()
		s.detailStatus.ErrorMessage = domain.MessageDetailsUnavailable
		s.detailStatus.ErrorCode = domain.StatusFrom(err)
		s.mu.Unlock()
		s.logger.Warn("load operator detail failed",
			telemetry.EventField(telemetry.EventDetailFailure),
			telemetry.OperatorIDField(id),
			zap.Error(err),
		)
		return
	}

	s.mu.Lock()
	s.detail = detail
	s.expenses = expenses
	s.mu.Unlock()
	s.logger.Debug("load operator detail succeeded",
		telemetry.EventField(telemetry.EventDetailSuccess),
		telemetry.OperatorIDField(id),
		zap.Int("expenses", len(expenses)),
	)
}

func (s *OperatorStore) fetchDetail(ctx context.Context, id string) (domain.OperatorDetail, []domain.Expense, error) {
	if strings.TrimSpace(id) == "" {
		return nil, nil, domain.RequestError("load operator detail", domain.ErrEmptyIdentifier)
	}
	if s.client == nil {
		return nil, nil, domain.RequestError("load operator detail", errNoClient)
	}

	var (
		detail   domain.OperatorDetail
		expenses []domain.Expense
		group    errgroup.Group
	)
	group.Go(func() error {
		resp, err := s.client.Get(ctx, domain.OperatorPath(id), nil)
		if err != nil {
			return err
		}
		decoded, err := decodeDetail(resp.Body)
		if err != nil {
			return invalidBody("load operator", resp.Status, err)
		}
		detail = decoded
		return nil
	})
	group.Go(func() error {
		resp, err := s.client.Get(ctx, domain.OperatorExpensesPath(id), nil)
		if err != nil {
			return err
		}
		decoded, err := decodeExpenses(resp.Body)
		if err != nil {
			return invalidBody("load operator expenses", resp.Status, err)
		}
		expenses = decoded
		return nil
	})
	if err := group.Wait(); err != nil {
		return nil, nil, err
	}
	return detail, expenses, nil
}

func (s *OperatorStore) begin(op domain.Operation) time.Time {
	s.metrics.AddInFlight(op, 1)
	return time.Now()
}

func (s *OperatorStore) end(op domain.Operation, started time.Time, err error) {
	s.metrics.AddInFlight(op, -1)
	s.metrics.ObserveOperation(op, time.Since(started), domain.OutcomeFor(err))
}

func invalidBody(op string, status int, cause error) *domain.APIError {
	apiErr := domain.ServerError(op, status, domain.MessageInvalidResponseBody)
	apiErr.Cause = cause
	return apiErr
}
