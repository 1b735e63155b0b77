package observability

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
)

// Metrics publishes custom metrics to CloudWatch
type Metrics struct {
	namespace string
	client    *cloudwatch.Client
}

// NewMetrics creates a metrics publisher under the given namespace
func NewMetrics(namespace string, client *cloudwatch.Client) *Metrics {
	return &Metrics{
		namespace: namespace,
		client:    client,
	}
}

// RecordCount publishes a single count metric
func (m *Metrics) RecordCount(ctx context.Context, name string, value float64) error {
	return m.put(ctx, []types.MetricDatum{
		{
			MetricName: aws.String(name),
			Value:      aws.Float64(value),
			Unit:       types.StandardUnitCount,
			Timestamp:  aws.Time(time.Now()),
		},
	})
}

// RecordFanout publishes the outcome of a single fan-out run
func (m *Metrics) RecordFanout(ctx context.Context, batchesTotal, batchesFailed, entriesWritten int) error {
	now := aws.Time(time.Now())
	return m.put(ctx, []types.MetricDatum{
		{
			MetricName: aws.String("FanoutBatches"),
			Value:      aws.Float64(float64(batchesTotal)),
			Unit:       types.StandardUnitCount,
			Timestamp:  now,
		},
		{
			MetricName: aws.String("FanoutBatchFailures"),
			Value:      aws.Float64(float64(batchesFailed)),
			Unit:       types.StandardUnitCount,
			Timestamp:  now,
		},
		{
			MetricName: aws.String("FanoutEntriesWritten"),
			Value:      aws.Float64(float64(entriesWritten)),
			Unit:       types.StandardUnitCount,
			Timestamp:  now,
		},
	})
}

func (m *Metrics) put(ctx context.Context, data []types.MetricDatum) error {
	if m.client == nil {
		return nil
	}
	_, err := m.client.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
		Namespace:  aws.String(m.namespace),
		MetricData: data,
	})
	return err
}
