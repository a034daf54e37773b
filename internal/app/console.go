package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/Adda-Baaj/reservation-desk/internal/config"
	"github.com/Adda-Baaj/reservation-desk/internal/domain"
	"github.com/Adda-Baaj/reservation-desk/internal/logger"
	"github.com/Adda-Baaj/reservation-desk/internal/storage"
	"github.com/Adda-Baaj/reservation-desk/pkg/apiclient"
	"github.com/Adda-Baaj/reservation-desk/pkg/httpclient"
	"github.com/Adda-Baaj/reservation-desk/pkg/reporters"
)

// ErrRequestFailed marks a command whose API request settled with an error.
var ErrRequestFailed = errors.New("request failed")

// Console drives the reservations API through one apiclient.Client and
// renders results. Every settled request is journaled and reported.
type Console struct {
	cfg     *config.Config
	client  *apiclient.Client
	fanout  *reporters.Fanout
	store   storage.Store
	log     logger.Logger
	out     io.Writer
	baseCtx context.Context
	unwatch func()
}

// ListFilter narrows the reservations listing. Empty fields are not sent.
type ListFilter struct {
	Date  string
	Email string
}

// NewConsole builds a console runtime from config.
func NewConsole(ctx context.Context, cfg *config.Config, log logger.Logger, out io.Writer) (*Console, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if out == nil {
		out = io.Discard
	}

	fanout, err := buildReporters(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	storeOpts := storage.Options{
		RecordTTL:       cfg.JournalTTL,
		CleanupInterval: cfg.JournalCleanupInterval,
	}
	store, err := storage.NewStore(cfg.StorageType, cfg.JournalPath, storeOpts)
	if err != nil {
		_ = fanout.Close()
		return nil, fmt.Errorf("init storage: %w", err)
	}
	log.InfoObj("journal initialized", "storage_config", map[string]any{
		"type":                     cfg.StorageType,
		"path":                     cfg.JournalPath,
		"record_ttl_seconds":       int(cfg.JournalTTL.Seconds()),
		"cleanup_interval_seconds": int(cfg.JournalCleanupInterval.Seconds()),
	})

	opts := []httpclient.Option{httpclient.WithBaseURL(cfg.APIBaseURL)}
	if logger.S != nil {
		opts = append(opts, httpclient.WithLogger(logger.S))
	}
	transport := httpclient.NewRestyClient(cfg.RequestTimeout, opts...)

	c := &Console{
		cfg:     cfg,
		client:  apiclient.New(transport, apiclient.WithLogger(log)),
		fanout:  fanout,
		store:   store,
		log:     log,
		out:     out,
		baseCtx: ctx,
	}
	c.unwatch = c.client.Watch(c.onChange)
	return c, nil
}

func buildReporters(ctx context.Context, cfg *config.Config, log logger.Logger) (*reporters.Fanout, error) {
	if strings.TrimSpace(cfg.ReportersFile) == "" {
		return reporters.NewFanout(nil), nil
	}

	reg, err := reporters.LoadRegistry(cfg.ReportersFile)
	if err != nil {
		return nil, fmt.Errorf("load reporters registry: %w", err)
	}
	enabled := reg.Enabled()
	reps, err := reporters.BuildAll(ctx, reporters.DefaultRegistry(), enabled, log)
	if err != nil {
		return nil, fmt.Errorf("build reporters: %w", err)
	}

	summaries := make([]map[string]string, 0, len(enabled))
	for _, rc := range enabled {
		summaries = append(summaries, map[string]string{"id": rc.ID, "type": rc.Type})
	}
	log.InfoObj("reporters registry loaded", "reporters_meta", map[string]any{
		"count":     len(summaries),
		"reporters": summaries,
	})
	return reporters.NewFanout(reps), nil
}

// Client exposes the underlying request client for state inspection.
func (c *Console) Client() *apiclient.Client { return c.client }

// onChange journals and reports settled requests.
func (c *Console) onChange(ch apiclient.Change) {
	if !ch.Settled {
		c.log.DebugObj("api request pending", "api_state", map[string]any{
			"method":   ch.Method,
			"endpoint": ch.Endpoint,
			"busy":     ch.Busy,
		})
		return
	}

	evt := reporters.NewEvent(c.cfg.AppName, ch)
	if rec, err := json.Marshal(evt); err != nil {
		c.log.ErrorObj("encode settlement failed", "error", err.Error())
	} else if err := c.store.Append(evt.SettledAt, rec); err != nil {
		c.log.ErrorObj("journal append failed", "error", err.Error())
	}

	if _, err := c.fanout.Report(c.baseCtx, evt); err != nil {
		c.log.WarnObj("settlement reporting failed", "error", err.Error())
	}
}

// settled converts the client's last error into a command error.
func (c *Console) settled() error {
	if err := c.client.LastError(); err != nil {
		return fmt.Errorf("%w: %s", ErrRequestFailed, err.Error())
	}
	return nil
}

// List fetches reservations and renders them as a table.
func (c *Console) List(ctx context.Context, f ListFilter) error {
	var q apiclient.Query
	if d := strings.TrimSpace(f.Date); d != "" {
		q.Set("date", d)
	}
	if e := strings.TrimSpace(f.Email); e != "" {
		q.Set("email", e)
	}

	resp := apiclient.FetchJSON[domain.ReservationResponse](ctx, c.client, c.cfg.ReservationsPath, q)
	if err := c.settled(); err != nil {
		return err
	}
	if resp == nil {
		resp = &domain.ReservationResponse{}
	}
	return c.renderReservations(resp.Reservations)
}

// Create submits a new reservation and renders the stored record.
func (c *Console) Create(ctx context.Context, r domain.Reservation) error {
	created := apiclient.PostJSON[domain.Reservation](ctx, c.client, c.cfg.ReservationsPath, r)
	if err := c.settled(); err != nil {
		return err
	}
	return c.renderJSON(created)
}

// Delete removes the reservation with id and renders the API response.
func (c *Console) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("reservation id is required")
	}
	resp := apiclient.DeleteJSON[map[string]any](ctx, c.client, c.cfg.ReservationsPath+"/"+url.PathEscape(id))
	if err := c.settled(); err != nil {
		return err
	}
	return c.renderJSON(resp)
}

// History renders up to limit journaled settlements, newest first.
func (c *Console) History(limit int) error {
	recs, err := c.store.Recent(limit)
	if err != nil {
		return fmt.Errorf("read journal: %w", err)
	}

	tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SETTLED\tMETHOD\tENDPOINT\tRESULT\tELAPSED")
	for _, rec := range recs {
		var evt reporters.Event
		if err := json.Unmarshal(rec, &evt); err != nil {
			c.log.WarnObj("skipping unreadable journal record", "error", err.Error())
			continue
		}
		result := "ok"
		if !evt.OK {
			result = "error: " + evt.Error
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%dms\n",
			evt.SettledAt.Local().Format(time.DateTime), evt.Method, evt.Endpoint, result, evt.ElapsedMs)
	}
	return tw.Flush()
}

func (c *Console) renderReservations(list []domain.Reservation) error {
	tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tDATE\tSEATS")
	for _, r := range list {
		date := r.Date
		if day, err := r.Day(); err == nil {
			date = fmt.Sprintf("%s (%s)", r.Date, day.Weekday().String()[:3])
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\n", r.ID, r.Name, r.Email, date, r.Seats)
	}
	return tw.Flush()
}

func (c *Console) renderJSON(v any) error {
	enc := json.NewEncoder(c.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Close releases the journal and reporters.
func (c *Console) Close() error {
	if c == nil {
		return nil
	}
	if c.unwatch != nil {
		c.unwatch()
	}
	var errs []error
	if err := c.fanout.Close(); err != nil {
		errs = append(errs, err)
	}
	if c.store != nil {
		if err := c.store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("storage close: %w", err))
		}
	}
	return errors.Join(errs...)
}
