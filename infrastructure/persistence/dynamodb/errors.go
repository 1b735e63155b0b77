package dynamodb

import (
	"errors"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const reasonConditionalCheckFailed = "ConditionalCheckFailed"

// conditionFailedAt reports whether err is a canceled transaction whose
// cancellation reason at index idx was a failed condition check. The index
// corresponds to the position of the item in the TransactWriteItems request,
// which is how a generic cancellation is mapped back to the specific
// conflict the caller cares about.
func conditionFailedAt(err error, idx int) bool {
	var canceled *types.TransactionCanceledException
	if !errors.As(err, &canceled) {
		return false
	}
	if idx < 0 || idx >= len(canceled.CancellationReasons) {
		return false
	}
	reason := canceled.CancellationReasons[idx]
	return reason.Code != nil && *reason.Code == reasonConditionalCheckFailed
}

// isConditionalCheckFailed reports whether a single-item write failed its
// condition expression
func isConditionalCheckFailed(err error) bool {
	var failed *types.ConditionalCheckFailedException
	return errors.As(err, &failed)
}
