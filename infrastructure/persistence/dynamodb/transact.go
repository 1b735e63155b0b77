package dynamodb

import (
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// profileCounterAdd builds the transaction item that adds delta to one of a
// profile's denormalized counters. The existence condition makes the whole
// transaction fail when the profile is gone, so counters can never be
// created detached from their profile.
func profileCounterAdd(tableName, userID, attribute string, delta int) types.TransactWriteItem {
	return types.TransactWriteItem{
		Update: &types.Update{
			TableName: aws.String(tableName),
			Key: map[string]types.AttributeValue{
				"PK": &types.AttributeValueMemberS{Value: UserPK(userID)},
				"SK": &types.AttributeValueMemberS{Value: ProfileSK()},
			},
			UpdateExpression:    aws.String("ADD #attr :delta"),
			ConditionExpression: aws.String("attribute_exists(PK)"),
			ExpressionAttributeNames: map[string]string{
				"#attr": attribute,
			},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":delta": &types.AttributeValueMemberN{Value: strconv.Itoa(delta)},
			},
		},
	}
}
