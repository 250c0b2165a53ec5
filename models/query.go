package models

// AttributeType enum for different DynamoDB attribute types
type AttributeType int

const (
	StringType AttributeType = iota
	NumberType
	BinaryType
)

// QueryConfig holds the configuration for a DynamoDB key lookup. IndexName
// is empty for primary-key queries.
type QueryConfig struct {
	TableName string
	IndexName string
	KeyName   string
	KeyValue  string
	KeyType   AttributeType
}
