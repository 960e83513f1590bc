package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/mrsante/records-management/internal/core/events"
)

// DeliveryJob carries one serialized visit notification to one destination.
type DeliveryJob struct {
	Destination string
	URL         string
	Payload     []byte
}

type Worker struct {
	ID         int
	WorkerPool chan chan DeliveryJob
	JobChannel chan DeliveryJob
	Logger     *slog.Logger
}

func NewWorker(id int, workerPool chan chan DeliveryJob, logger *slog.Logger) *Worker {
	return &Worker{
		ID:         id,
		WorkerPool: workerPool,
		JobChannel: make(chan DeliveryJob),
		Logger:     logger,
	}
}

func (w *Worker) Start(ctx context.Context, wg *sync.WaitGroup, processFunc func(DeliveryJob)) {
	wg.Add(1)
	go func() {
		defer wg.Done()

		for {
			w.WorkerPool <- w.JobChannel

			select {
			case job := <-w.JobChannel:
				w.Logger.Debug("worker delivering notification", "worker_id", w.ID, "destination", job.Destination)
				processFunc(job)
			case <-ctx.Done():
				w.Logger.Debug("worker shutting down", "worker_id", w.ID)
				return
			}
		}
	}()
}

// Client fans visit notifications out to the configured webhook endpoints
// through a bounded worker pool. A full queue drops the notification rather
// than blocking the caller.
type Client struct {
	policeURL string
	emsURL    string
	timeout   time.Duration
	logger    *slog.Logger

	jobQueue   chan DeliveryJob
	workerPool chan chan DeliveryJob
	maxWorkers int
	httpClient *http.Client
	ctx        context.Context
	cancel     context.CancelFunc
	wg         sync.WaitGroup
	once       sync.Once
}

type Config struct {
	PoliceURL    string
	EMSURL       string
	Timeout      time.Duration
	MaxWorkers   int
	JobQueueSize int
}

func NewClient(config Config, logger *slog.Logger) *Client {
	ctx, cancel := context.WithCancel(context.Background())

	maxWorkers := config.MaxWorkers
	if maxWorkers <= 0 {
		maxWorkers = 4
	}

	jobQueueSize := config.JobQueueSize
	if jobQueueSize <= 0 {
		jobQueueSize = 100
	}

	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	client := &Client{
		policeURL:  config.PoliceURL,
		emsURL:     config.EMSURL,
		timeout:    timeout,
		logger:     logger,
		maxWorkers: maxWorkers,
		jobQueue:   make(chan DeliveryJob, jobQueueSize),
		workerPool: make(chan chan DeliveryJob, maxWorkers),
		httpClient: &http.Client{Timeout: timeout},
		ctx:        ctx,
		cancel:     cancel,
	}

	client.startWorkerPool()

	return client
}

func (c *Client) startWorkerPool() {
	c.once.Do(func() {
		for i := 0; i < c.maxWorkers; i++ {
			worker := NewWorker(i, c.workerPool, c.logger)
			worker.Start(c.ctx, &c.wg, c.deliver)
		}

		go c.dispatch()

		c.logger.Info("notification worker pool started",
			"max_workers", c.maxWorkers,
			"queue_size", cap(c.jobQueue))
	})
}

func (c *Client) dispatch() {
	c.wg.Add(1)
	defer c.wg.Done()

	for {
		select {
		case job := <-c.jobQueue:
			select {
			case jobChannel := <-c.workerPool:
				select {
				case jobChannel <- job:
				case <-c.ctx.Done():
					return
				}
			case <-c.ctx.Done():
				return
			}
		case <-c.ctx.Done():
			return
		}
	}
}

func (c *Client) Shutdown() {
	c.logger.Info("shutting down notification client")
	c.cancel()
	c.wg.Wait()
	c.logger.Info("notification client shutdown complete")
}

// RegisterHandlers subscribes the client to the events it delivers.
func (c *Client) RegisterHandlers(bus *events.EventBus) {
	bus.Subscribe(events.EventTypeVisitRecorded, c.HandleVisitRecorded)
}

func (c *Client) HandleVisitRecorded(ctx context.Context, event events.Event) error {
	visit, ok := event.(*events.VisitRecordedEvent)
	if !ok {
		return fmt.Errorf("unexpected event payload for %s", event.EventType())
	}
	return c.NotifyVisit(visit)
}

// NotifyVisit queues one delivery per configured endpoint. Endpoints left
// unconfigured are skipped.
func (c *Client) NotifyVisit(visit *events.VisitRecordedEvent) error {
	payload, err := json.Marshal(map[string]interface{}{
		"event":         visit.EventType(),
		"event_id":      visit.EventID(),
		"report_id":     visit.ReportID,
		"patient_id":    visit.PatientID,
		"patient_name":  visit.PatientName,
		"title":         visit.Title,
		"incident_date": visit.IncidentDate.Format(time.RFC3339),
		"recorded_at":   visit.OccurredAt().Format(time.RFC3339),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal visit notification: %w", err)
	}

	destinations := []DeliveryJob{}
	if c.policeURL != "" {
		destinations = append(destinations, DeliveryJob{Destination: "police", URL: c.policeURL, Payload: payload})
	}
	if c.emsURL != "" {
		destinations = append(destinations, DeliveryJob{Destination: "ems", URL: c.emsURL, Payload: payload})
	}

	if len(destinations) == 0 {
		c.logger.Debug("no notification endpoints configured", "report_id", visit.ReportID)
		return nil
	}

	for _, job := range destinations {
		select {
		case c.jobQueue <- job:
			c.logger.Info("visit notification queued",
				"destination", job.Destination,
				"report_id", visit.ReportID,
				"queue_length", len(c.jobQueue))
		default:
			c.logger.Warn("notification queue full, dropping delivery",
				"destination", job.Destination,
				"report_id", visit.ReportID,
				"queue_capacity", cap(c.jobQueue))
		}
	}

	return nil
}

func (c *Client) deliver(job DeliveryJob) {
	ctx, cancel := context.WithTimeout(c.ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, job.URL, bytes.NewBuffer(job.Payload))
	if err != nil {
		c.logger.Error("failed to build notification request",
			"destination", job.Destination,
			"error", err)
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("notification delivery failed",
			"destination", job.Destination,
			"error", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		c.logger.Info("notification delivered",
			"destination", job.Destination,
			"status_code", resp.StatusCode)
	} else {
		c.logger.Warn("notification endpoint returned error",
			"destination", job.Destination,
			"status_code", resp.StatusCode)
	}
}
