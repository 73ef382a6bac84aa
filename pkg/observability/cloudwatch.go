package observability

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
)

// PutMetricDataAPI is the CloudWatch call the recorder needs
type PutMetricDataAPI interface {
	PutMetricData(ctx context.Context, params *cloudwatch.PutMetricDataInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricDataOutput, error)
}

// CloudWatch accepts at most 1000 datums per PutMetricData call
const maxDatumsPerCall = 1000

// CloudWatchRecorder buffers upstream observations and ships them in one call per
// Lambda invocation. Prometheus scraping does not work against Lambda.
type CloudWatchRecorder struct {
	client    PutMetricDataAPI
	namespace string

	mu      sync.Mutex
	pending []types.MetricDatum
	now     func() time.Time
}

// NewCloudWatchRecorder creates a recorder publishing under namespace
func NewCloudWatchRecorder(client PutMetricDataAPI, namespace string) *CloudWatchRecorder {
	return &CloudWatchRecorder{
		client:    client,
		namespace: namespace,
		now:       time.Now,
	}
}

// RecordUpstream implements UpstreamRecorder
func (c *CloudWatchRecorder) RecordUpstream(service, outcome string, duration time.Duration) {
	if c == nil || c.client == nil {
		return
	}
	ts := aws.Time(c.now())
	dims := []types.Dimension{
		{Name: aws.String("Service"), Value: aws.String(service)},
		{Name: aws.String("Outcome"), Value: aws.String(outcome)},
	}

	c.mu.Lock()
	c.pending = append(c.pending,
		types.MetricDatum{
			MetricName: aws.String("UpstreamLatency"),
			Dimensions: dims,
			Value:      aws.Float64(float64(duration.Milliseconds())),
			Unit:       types.StandardUnitMilliseconds,
			Timestamp:  ts,
		},
		types.MetricDatum{
			MetricName: aws.String("UpstreamCount"),
			Dimensions: dims,
			Value:      aws.Float64(1),
			Unit:       types.StandardUnitCount,
			Timestamp:  ts,
		},
	)
	c.mu.Unlock()
}

// Pending reports how many datums are waiting to be flushed
func (c *CloudWatchRecorder) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending)
}

// Flush sends everything buffered so far
func (c *CloudWatchRecorder) Flush(ctx context.Context) error {
	if c == nil || c.client == nil {
		return nil
	}

	c.mu.Lock()
	batch := c.pending
	c.pending = nil
	c.mu.Unlock()

	for start := 0; start < len(batch); start += maxDatumsPerCall {
		end := min(start+maxDatumsPerCall, len(batch))
		if _, err := c.client.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
			Namespace:  aws.String(c.namespace),
			MetricData: batch[start:end],
		}); err != nil {
			return fmt.Errorf("put metric data: %w", err)
		}
	}
	return nil
}
