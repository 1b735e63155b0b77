package dynamodb

import (
	"errors"
	"fmt"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
)

func canceledWith(codes ...string) error {
	reasons := make([]types.CancellationReason, len(codes))
	for i, code := range codes {
		reasons[i] = types.CancellationReason{Code: aws.String(code)}
	}
	return &types.TransactionCanceledException{CancellationReasons: reasons}
}

func TestConditionFailedAt(t *testing.T) {
	err := canceledWith("ConditionalCheckFailed", "None", "None")

	assert.True(t, conditionFailedAt(err, 0))
	assert.False(t, conditionFailedAt(err, 1))
	assert.False(t, conditionFailedAt(err, 2))
	assert.False(t, conditionFailedAt(err, 3))
	assert.False(t, conditionFailedAt(err, -1))
}

func TestConditionFailedAt_WrappedError(t *testing.T) {
	err := fmt.Errorf("transact write: %w", canceledWith("None", "ConditionalCheckFailed"))

	assert.True(t, conditionFailedAt(err, 1))
	assert.False(t, conditionFailedAt(err, 0))
}

func TestConditionFailedAt_OtherErrors(t *testing.T) {
	assert.False(t, conditionFailedAt(errors.New("throttled"), 0))
	assert.False(t, conditionFailedAt(nil, 0))
}

func TestIsConditionalCheckFailed(t *testing.T) {
	assert.True(t, isConditionalCheckFailed(&types.ConditionalCheckFailedException{}))
	assert.False(t, isConditionalCheckFailed(errors.New("other")))
}
