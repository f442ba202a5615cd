package http

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	fiber "github.com/gofiber/fiber/v2"
	swagger "github.com/gofiber/swagger"

	"journal_server/internal/domain"
	"journal_server/internal/usecase"
)

type AccountService interface {
	CreateAccount(ctx context.Context, account domain.Account) (domain.Account, error)
	GetAccount(ctx context.Context, number string) (domain.Account, error)
	ListAccounts(ctx context.Context, filter domain.AccountFilter) ([]domain.Account, error)
	UpdateAccount(ctx context.Context, account domain.Account) (domain.Account, error)
	ArchiveAccount(ctx context.Context, number string) error
	UnarchiveAccount(ctx context.Context, number string) error
	DeleteAccount(ctx context.Context, number string) error
	RecordPayout(ctx context.Context, payout domain.Transaction) (domain.Transaction, error)
	ListPayouts(ctx context.Context, accountNumber string, limit int) ([]domain.Transaction, error)
	DeletePayout(ctx context.Context, id string) error
	PortfolioStats(ctx context.Context, opts usecase.StatsOptions) (usecase.PortfolioStats, error)
	ListEquityHistory(ctx context.Context, accountNumber string, limit int) ([]domain.EquitySnapshot, error)
	DrawdownReport(ctx context.Context, number string, dailyPercent, maxPercent float64) (domain.DrawdownReport, error)
}

type TradeService interface {
	RecordTrade(ctx context.Context, trade domain.Trade) error
	GetTrade(ctx context.Context, id string) (domain.Trade, error)
	ListTrades(ctx context.Context, accountNumber string, limit int) ([]domain.Trade, error)
	AnnotateTrade(ctx context.Context, id string, annotations domain.TradeAnnotations) (domain.Trade, error)
	CreateTag(ctx context.Context, tag domain.Tag) (domain.Tag, error)
	ListTags(ctx context.Context) ([]domain.Tag, error)
	DeleteTag(ctx context.Context, id string) error
}

type NewsService interface {
	Sync(ctx context.Context) (int, error)
	List(ctx context.Context, opts domain.ListEventsOptions) ([]domain.NewsEvent, error)
}

type ExportService interface {
	ExportTrades(ctx context.Context, accountNumber string) ([]byte, error)
}

// Config carries transport-level defaults.
type Config struct {
	DrawdownDailyPercent float64
	DrawdownMaxPercent   float64
}

type Router struct {
	app            *fiber.App
	cfg            Config
	accountService AccountService
	tradeService   TradeService
	newsService    NewsService
	exportService  ExportService
}

func New(cfg Config, accounts AccountService, trades TradeService, news NewsService, export ExportService) *Router {
	app := fiber.New()

	r := &Router{
		app:            app,
		cfg:            cfg,
		accountService: accounts,
		tradeService:   trades,
		newsService:    news,
		exportService:  export,
	}

	api := app.Group("/api")
	v1 := api.Group("/v1")

	// /accounts/stats must precede /accounts/:number
	v1.Get("/accounts/stats", r.portfolioStats)
	v1.Get("/accounts", r.listAccounts)
	v1.Post("/accounts", r.createAccount)
	v1.Get("/accounts/:number", r.getAccount)
	v1.Put("/accounts/:number", r.updateAccount)
	v1.Delete("/accounts/:number", r.deleteAccount)
	v1.Post("/accounts/:number/archive", r.archiveAccount)
	v1.Post("/accounts/:number/unarchive", r.unarchiveAccount)
	v1.Get("/accounts/:number/drawdown", r.drawdownReport)
	v1.Get("/accounts/:number/equity-history", r.equityHistory)

	v1.Post("/accounts/:number/payouts", r.recordPayout)
	v1.Get("/accounts/:number/payouts", r.listPayouts)
	v1.Delete("/payouts/:id", r.deletePayout)

	v1.Post("/accounts/:number/trades", r.recordTrade)
	v1.Get("/accounts/:number/trades", r.listTrades)
	v1.Get("/trades/:id", r.getTrade)
	v1.Put("/trades/:id/annotations", r.annotateTrade)

	v1.Get("/accounts/:number/export", r.exportAccount)
	v1.Get("/export", r.exportAll)

	v1.Get("/events", r.listEvents)
	v1.Post("/events/sync", r.syncEvents)

	v1.Get("/tags", r.listTags)
	v1.Post("/tags", r.createTag)
	v1.Delete("/tags/:id", r.deleteTag)

	app.Get("/swagger/*", swagger.HandlerDefault)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	return r
}

func (r *Router) App() *fiber.App {
	return r.app
}

func userContext(c *fiber.Ctx) context.Context {
	if ctx := c.UserContext(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func mapServiceError(err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, usecase.ErrDuplicateAccount),
		errors.Is(err, usecase.ErrStartingBalanceLocked):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	default:
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
}

func queryInt(c *fiber.Ctx, name string, fallback int) int {
	if v := c.Query(name); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			return parsed
		}
	}
	return fallback
}

func queryBool(c *fiber.Ctx, name string) bool {
	switch c.Query(name) {
	case "1", "true", "yes":
		return true
	default:
		return false
	}
}

func queryFloat(c *fiber.Ctx, name string) float64 {
	if v := c.Query(name); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
			return parsed
		}
	}
	return 0
}

type AccountRequest struct {
	Number          string  `json:"number"`
	Name            string  `json:"name"`
	Broker          string  `json:"broker"`
	AccountType     string  `json:"accountType"`
	StartingBalance float64 `json:"startingBalance"`
	Status          string  `json:"status"`
	CurrentPhase    int     `json:"currentPhase"`
	EvaluationType  string  `json:"evaluationType"`
}

func (req AccountRequest) toDomain() domain.Account {
	return domain.Account{
		Number:          req.Number,
		Name:            req.Name,
		Broker:          req.Broker,
		AccountType:     domain.AccountType(req.AccountType),
		StartingBalance: req.StartingBalance,
		Status:          domain.AccountStatus(req.Status),
		CurrentPhase:    req.CurrentPhase,
		EvaluationType:  domain.EvaluationType(req.EvaluationType),
	}
}

type PayoutRequest struct {
	Amount float64 `json:"amount"`
	Status string  `json:"status"`
	PaidAt string  `json:"paidAt"`
}

type TradeRequest struct {
	Ticket     int64   `json:"ticket"`
	Symbol     string  `json:"symbol"`
	Side       string  `json:"side"`
	Volume     float64 `json:"volume"`
	EntryTime  string  `json:"entryTime"`
	ExitTime   string  `json:"exitTime"`
	EntryPrice float64 `json:"entryPrice"`
	ExitPrice  float64 `json:"exitPrice"`
	Pnl        float64 `json:"pnl"`
	Commission float64 `json:"commission"`
	Swap       float64 `json:"swap"`
}

type AnnotationsRequest struct {
	Note           string   `json:"note"`
	ScreenshotURLs []string `json:"screenshotUrls"`
	TagIDs         []string `json:"tagIds"`
	NewsEventIDs   []string `json:"newsEventIds"`
}

type TagRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// createAccount godoc
// @Summary Create a trading account
// @Tags accounts
// @Accept json
// @Produce json
// @Param request body AccountRequest true "Account payload"
// @Success 201 {object} domain.Account
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /accounts [post]
func (r *Router) createAccount(c *fiber.Ctx) error {
	var req AccountRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
	}

	ctx, cancel := context.WithTimeout(userContext(c), 10*time.Second)
	defer cancel()

	account, err := r.accountService.CreateAccount(ctx, req.toDomain())
	if err != nil {
		if errors.Is(err, usecase.ErrDuplicateAccount) {
			return fiber.NewError(fiber.StatusConflict, err.Error())
		}
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return c.Status(fiber.StatusCreated).JSON(account)
}

// listAccounts godoc
// @Summary List trading accounts
// @Tags accounts
// @Produce json
// @Param account_type query string false "Filter by account type (live, prop-firm)"
// @Param status query string false "Filter by status"
// @Param search query string false "Match against number or name"
// @Param include_archived query bool false "Include archived accounts"
// @Success 200 {array} domain.Account
// @Failure 500 {object} map[string]string
// @Router /accounts [get]
func (r *Router) listAccounts(c *fiber.Ctx) error {
	filter := domain.AccountFilter{
		AccountType:     domain.AccountType(c.Query("account_type")),
		Status:          domain.AccountStatus(c.Query("status")),
		Search:          c.Query("search"),
		IncludeArchived: queryBool(c, "include_archived"),
	}

	ctx, cancel := context.WithTimeout(userContext(c), 5*time.Second)
	defer cancel()

	accounts, err := r.accountService.ListAccounts(ctx, filter)
	if err != nil {
		return mapServiceError(err)
	}

	return c.JSON(accounts)
}

// getAccount godoc
// @Summary Get one account
// @Tags accounts
// @Produce json
// @Param number path string true "Account number"
// @Success 200 {object} domain.Account
// @Failure 404 {object} map[string]string
// @Router /accounts/{number} [get]
func (r *Router) getAccount(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(userContext(c), 5*time.Second)
	defer cancel()

	account, err := r.accountService.GetAccount(ctx, c.Params("number"))
	if err != nil {
		return mapServiceError(err)
	}

	return c.JSON(account)
}

// updateAccount godoc
// @Summary Update an account
// @Tags accounts
// @Accept json
// @Produce json
// @Param number path string true "Account number"
// @Param request body AccountRequest true "Account payload"
// @Success 200 {object} domain.Account
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /accounts/{number} [put]
func (r *Router) updateAccount(c *fiber.Ctx) error {
	var req AccountRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
	}

	account := req.toDomain()
	account.Number = c.Params("number")

	ctx, cancel := context.WithTimeout(userContext(c), 10*time.Second)
	defer cancel()

	updated, err := r.accountService.UpdateAccount(ctx, account)
	if err != nil {
		return mapServiceError(err)
	}

	return c.JSON(updated)
}

// deleteAccount godoc
// @Summary Delete an account and all its records
// @Tags accounts
// @Produce json
// @Param number path string true "Account number"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /accounts/{number} [delete]
func (r *Router) deleteAccount(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(userContext(c), 30*time.Second)
	defer cancel()

	if err := r.accountService.DeleteAccount(ctx, c.Params("number")); err != nil {
		return mapServiceError(err)
	}

	return c.JSON(fiber.Map{"status": "deleted"})
}

func (r *Router) archiveAccount(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(userContext(c), 5*time.Second)
	defer cancel()

	if err := r.accountService.ArchiveAccount(ctx, c.Params("number")); err != nil {
		return mapServiceError(err)
	}

	return c.JSON(fiber.Map{"status": "archived"})
}

func (r *Router) unarchiveAccount(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(userContext(c), 5*time.Second)
	defer cancel()

	if err := r.accountService.UnarchiveAccount(ctx, c.Params("number")); err != nil {
		return mapServiceError(err)
	}

	return c.JSON(fiber.Map{"status": "active"})
}

// portfolioStats godoc
// @Summary Portfolio equity and aggregates
// @Tags accounts
// @Produce json
// @Param exclude_failed query bool false "Exclude failed accounts' P&L"
// @Param include_payouts query bool false "Subtract payouts from equity"
// @Param account_type query string false "Filter by account type"
// @Param status query string false "Filter by status"
// @Param include_archived query bool false "Include archived accounts"
// @Success 200 {object} usecase.PortfolioStats
// @Failure 500 {object} map[string]string
// @Router /accounts/stats [get]
func (r *Router) portfolioStats(c *fiber.Ctx) error {
	opts := usecase.StatsOptions{
		Filter: domain.AccountFilter{
			AccountType:     domain.AccountType(c.Query("account_type")),
			Status:          domain.AccountStatus(c.Query("status")),
			IncludeArchived: queryBool(c, "include_archived"),
		},
		Calculate: domain.CalculateOptions{
			ExcludeFailedAccounts: queryBool(c, "exclude_failed"),
			IncludePayouts:        queryBool(c, "include_payouts"),
		},
	}

	ctx, cancel := context.WithTimeout(userContext(c), 30*time.Second)
	defer cancel()

	stats, err := r.accountService.PortfolioStats(ctx, opts)
	if err != nil {
		return mapServiceError(err)
	}

	return c.JSON(stats)
}

// drawdownReport godoc
// @Summary Prop-firm drawdown evaluation
// @Tags accounts
// @Produce json
// @Param number path string true "Account number"
// @Param daily_percent query number false "Daily loss limit as percent of account size"
// @Param max_percent query number false "Max drawdown limit as percent of account size"
// @Success 200 {object} domain.DrawdownReport
// @Failure 404 {object} map[string]string
// @Router /accounts/{number}/drawdown [get]
func (r *Router) drawdownReport(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(userContext(c), 30*time.Second)
	defer cancel()

	daily := queryFloat(c, "daily_percent")
	if daily <= 0 {
		daily = r.cfg.DrawdownDailyPercent
	}
	max := queryFloat(c, "max_percent")
	if max <= 0 {
		max = r.cfg.DrawdownMaxPercent
	}

	report, err := r.accountService.DrawdownReport(ctx, c.Params("number"), daily, max)
	if err != nil {
		return mapServiceError(err)
	}

	return c.JSON(report)
}

func (r *Router) equityHistory(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(userContext(c), 5*time.Second)
	defer cancel()

	history, err := r.accountService.ListEquityHistory(ctx, c.Params("number"), queryInt(c, "limit", 500))
	if err != nil {
		return mapServiceError(err)
	}

	return c.JSON(history)
}

// recordPayout godoc
// @Summary Record a payout on an account
// @Tags payouts
// @Accept json
// @Produce json
// @Param number path string true "Account number"
// @Param request body PayoutRequest true "Payout payload"
// @Success 201 {object} domain.Transaction
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /accounts/{number}/payouts [post]
func (r *Router) recordPayout(c *fiber.Ctx) error {
	var req PayoutRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
	}

	payout := domain.Transaction{
		AccountNumber: c.Params("number"),
		Amount:        req.Amount,
		Status:        domain.TransactionStatus(req.Status),
	}
	if req.PaidAt != "" {
		paidAt, err := time.Parse(time.RFC3339, req.PaidAt)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid paidAt")
		}
		payout.PaidAt = paidAt
	}

	ctx, cancel := context.WithTimeout(userContext(c), 10*time.Second)
	defer cancel()

	created, err := r.accountService.RecordPayout(ctx, payout)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

func (r *Router) listPayouts(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(userContext(c), 5*time.Second)
	defer cancel()

	payouts, err := r.accountService.ListPayouts(ctx, c.Params("number"), queryInt(c, "limit", 100))
	if err != nil {
		return mapServiceError(err)
	}

	return c.JSON(payouts)
}

func (r *Router) deletePayout(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(userContext(c), 5*time.Second)
	defer cancel()

	if err := r.accountService.DeletePayout(ctx, c.Params("id")); err != nil {
		return mapServiceError(err)
	}

	return c.JSON(fiber.Map{"status": "deleted"})
}

// recordTrade godoc
// @Summary Record a trade on an account
// @Tags trades
// @Accept json
// @Produce json
// @Param number path string true "Account number"
// @Param request body TradeRequest true "Trade payload"
// @Success 201 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /accounts/{number}/trades [post]
func (r *Router) recordTrade(c *fiber.Ctx) error {
	var req TradeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
	}
	if req.Ticket == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "ticket required")
	}

	trade := domain.Trade{
		AccountNumber: c.Params("number"),
		Ticket:        req.Ticket,
		Symbol:        req.Symbol,
		Side:          domain.TradeSide(req.Side),
		Volume:        req.Volume,
		EntryTime:     parseTime(req.EntryTime),
		ExitTime:      parseTime(req.ExitTime),
		EntryPrice:    req.EntryPrice,
		ExitPrice:     req.ExitPrice,
		Pnl:           req.Pnl,
		Commission:    req.Commission,
		Swap:          req.Swap,
		RawPayload:    append([]byte(nil), c.Body()...),
	}

	ctx, cancel := context.WithTimeout(userContext(c), 10*time.Second)
	defer cancel()

	if err := r.tradeService.RecordTrade(ctx, trade); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": "ok"})
}

func (r *Router) listTrades(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(userContext(c), 5*time.Second)
	defer cancel()

	trades, err := r.tradeService.ListTrades(ctx, c.Params("number"), queryInt(c, "limit", 1000))
	if err != nil {
		return mapServiceError(err)
	}

	return c.JSON(trades)
}

func (r *Router) getTrade(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(userContext(c), 5*time.Second)
	defer cancel()

	trade, err := r.tradeService.GetTrade(ctx, c.Params("id"))
	if err != nil {
		return mapServiceError(err)
	}

	return c.JSON(trade)
}

// annotateTrade godoc
// @Summary Replace a trade's annotations
// @Tags trades
// @Accept json
// @Produce json
// @Param id path string true "Trade id"
// @Param request body AnnotationsRequest true "Annotation payload"
// @Success 200 {object} domain.Trade
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /trades/{id}/annotations [put]
func (r *Router) annotateTrade(c *fiber.Ctx) error {
	var req AnnotationsRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
	}

	annotations := domain.TradeAnnotations{
		Note:           req.Note,
		ScreenshotURLs: req.ScreenshotURLs,
		TagIDs:         req.TagIDs,
		NewsEventIDs:   req.NewsEventIDs,
	}

	ctx, cancel := context.WithTimeout(userContext(c), 10*time.Second)
	defer cancel()

	trade, err := r.tradeService.AnnotateTrade(ctx, c.Params("id"), annotations)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return c.JSON(trade)
}

// exportAccount godoc
// @Summary Export an account's trades as CSV
// @Tags export
// @Produce text/csv
// @Param number path string true "Account number"
// @Success 200 {string} string
// @Failure 404 {object} map[string]string
// @Router /accounts/{number}/export [get]
func (r *Router) exportAccount(c *fiber.Ctx) error {
	return r.export(c, c.Params("number"))
}

func (r *Router) exportAll(c *fiber.Ctx) error {
	return r.export(c, "")
}

func (r *Router) export(c *fiber.Ctx, accountNumber string) error {
	ctx, cancel := context.WithTimeout(userContext(c), 30*time.Second)
	defer cancel()

	data, err := r.exportService.ExportTrades(ctx, accountNumber)
	if err != nil {
		return mapServiceError(err)
	}

	filename := "trades.csv"
	if accountNumber != "" {
		filename = fmt.Sprintf("trades-%s.csv", accountNumber)
	}

	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(data)
}

// listEvents godoc
// @Summary List news events
// @Tags news
// @Produce json
// @Param limit query int false "Maximum number of events"
// @Param date_from query string false "Events at or after this ISO8601 timestamp"
// @Param date_to query string false "Events at or before this ISO8601 timestamp"
// @Success 200 {array} domain.NewsEvent
// @Failure 400 {object} map[string]string
// @Router /events [get]
func (r *Router) listEvents(c *fiber.Ctx) error {
	opts := domain.ListEventsOptions{Limit: queryInt(c, "limit", 100)}

	if fromStr := c.Query("date_from"); fromStr != "" {
		from := parseTime(fromStr)
		if from.IsZero() {
			return fiber.NewError(fiber.StatusBadRequest, "invalid date_from")
		}
		opts.From = &from
	}

	if toStr := c.Query("date_to"); toStr != "" {
		to := parseTime(toStr)
		if to.IsZero() {
			return fiber.NewError(fiber.StatusBadRequest, "invalid date_to")
		}
		opts.To = &to
	}

	ctx, cancel := context.WithTimeout(userContext(c), 5*time.Second)
	defer cancel()

	events, err := r.newsService.List(ctx, opts)
	if err != nil {
		return mapServiceError(err)
	}

	return c.JSON(events)
}

// syncEvents godoc
// @Summary Trigger a news feed sync
// @Tags news
// @Produce json
// @Success 200 {object} map[string]int
// @Failure 500 {object} map[string]string
// @Router /events/sync [post]
func (r *Router) syncEvents(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(userContext(c), 30*time.Second)
	defer cancel()

	count, err := r.newsService.Sync(ctx)
	if err != nil {
		if errors.Is(err, usecase.ErrNoEvents) {
			return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
				"synced": 0,
				"status": "no events available",
			})
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(fiber.Map{
		"synced": count,
	})
}

func (r *Router) listTags(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(userContext(c), 5*time.Second)
	defer cancel()

	tags, err := r.tradeService.ListTags(ctx)
	if err != nil {
		return mapServiceError(err)
	}

	return c.JSON(tags)
}

func (r *Router) createTag(c *fiber.Ctx) error {
	var req TagRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
	}

	ctx, cancel := context.WithTimeout(userContext(c), 5*time.Second)
	defer cancel()

	tag, err := r.tradeService.CreateTag(ctx, domain.Tag{Name: req.Name, Color: req.Color})
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return c.Status(fiber.StatusCreated).JSON(tag)
}

func (r *Router) deleteTag(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(userContext(c), 5*time.Second)
	defer cancel()

	if err := r.tradeService.DeleteTag(ctx, c.Params("id")); err != nil {
		return mapServiceError(err)
	}

	return c.JSON(fiber.Map{"status": "deleted"})
}

func parseTime(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}
	layouts := []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"2006-01-02",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return time.Time{}
}
