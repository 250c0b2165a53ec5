package infrastructure

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/tidwall/gjson"
)

// TableSchema mirrors the JSON shape of table_schema.json.
type TableSchema struct {
	TableName              string                 `json:"TableName"`
	AttributeDefinitions   []AttributeDefinition  `json:"AttributeDefinitions"`
	KeySchema              []KeySchemaElement     `json:"KeySchema"`
	ProvisionedThroughput  Throughput             `json:"ProvisionedThroughput"`
	GlobalSecondaryIndexes []GlobalSecondaryIndex `json:"GlobalSecondaryIndexes,omitempty"`
}

type AttributeDefinition struct {
	AttributeName string `json:"AttributeName"`
	AttributeType string `json:"AttributeType"`
}

type KeySchemaElement struct {
	AttributeName string `json:"AttributeName"`
	KeyType       string `json:"KeyType"`
}

type Throughput struct {
	ReadCapacityUnits  int64 `json:"ReadCapacityUnits"`
	WriteCapacityUnits int64 `json:"WriteCapacityUnits"`
}

type GlobalSecondaryIndex struct {
	IndexName             string             `json:"IndexName"`
	KeySchema             []KeySchemaElement `json:"KeySchema"`
	Projection            Projection         `json:"Projection"`
	ProvisionedThroughput Throughput         `json:"ProvisionedThroughput"`
}

type Projection struct {
	ProjectionType string `json:"ProjectionType"`
}

//go:embed table_schema.json
var tablesSchema []byte

// GetTables resolves the CreateTableInput for a prefixed table name, e.g.
// "safecheck_safety_checks" -> schema key "safety_checks".
func GetTables(tableName string) (*dynamodb.CreateTableInput, error) {
	schemaKey := extractBaseTableName(tableName)

	tableJson := gjson.Get(string(tablesSchema), schemaKey)
	if !tableJson.Exists() {
		return nil, fmt.Errorf("table schema not found for key: %s", schemaKey)
	}

	var schema TableSchema
	if err := json.Unmarshal([]byte(tableJson.Raw), &schema); err != nil {
		return nil, fmt.Errorf("failed to unmarshal schema JSON: %w", err)
	}

	// Override with the actual table name (including prefix)
	schema.TableName = tableName

	return schema.ToDynamoInput(), nil
}

// extractBaseTableName strips the environment prefix from a table name.
// Only the first underscore separates prefix from base, so multi-word base
// names like "safety_checks" survive.
func extractBaseTableName(tableName string) string {
	parts := strings.SplitN(tableName, "_", 2)
	if len(parts) == 2 {
		return parts[1]
	}
	return tableName
}

// ToDynamoInput converts the JSON schema to the SDK's CreateTableInput.
func (ts *TableSchema) ToDynamoInput() *dynamodb.CreateTableInput {
	attrDefs := make([]types.AttributeDefinition, 0, len(ts.AttributeDefinitions))
	for _, a := range ts.AttributeDefinitions {
		attrDefs = append(attrDefs, types.AttributeDefinition{
			AttributeName: aws.String(a.AttributeName),
			AttributeType: types.ScalarAttributeType(a.AttributeType),
		})
	}

	keySchema := make([]types.KeySchemaElement, 0, len(ts.KeySchema))
	for _, k := range ts.KeySchema {
		keySchema = append(keySchema, types.KeySchemaElement{
			AttributeName: aws.String(k.AttributeName),
			KeyType:       types.KeyType(k.KeyType),
		})
	}

	input := &dynamodb.CreateTableInput{
		TableName:            aws.String(ts.TableName),
		AttributeDefinitions: attrDefs,
		KeySchema:            keySchema,
		ProvisionedThroughput: &types.ProvisionedThroughput{
			ReadCapacityUnits:  aws.Int64(ts.ProvisionedThroughput.ReadCapacityUnits),
			WriteCapacityUnits: aws.Int64(ts.ProvisionedThroughput.WriteCapacityUnits),
		},
	}

	if len(ts.GlobalSecondaryIndexes) > 0 {
		gsis := make([]types.GlobalSecondaryIndex, 0, len(ts.GlobalSecondaryIndexes))
		for _, g := range ts.GlobalSecondaryIndexes {
			gsiKeys := make([]types.KeySchemaElement, 0, len(g.KeySchema))
			for _, k := range g.KeySchema {
				gsiKeys = append(gsiKeys, types.KeySchemaElement{
					AttributeName: aws.String(k.AttributeName),
					KeyType:       types.KeyType(k.KeyType),
				})
			}
			gsis = append(gsis, types.GlobalSecondaryIndex{
				IndexName: aws.String(g.IndexName),
				KeySchema: gsiKeys,
				Projection: &types.Projection{
					ProjectionType: types.ProjectionType(g.Projection.ProjectionType),
				},
				ProvisionedThroughput: &types.ProvisionedThroughput{
					ReadCapacityUnits:  aws.Int64(g.ProvisionedThroughput.ReadCapacityUnits),
					WriteCapacityUnits: aws.Int64(g.ProvisionedThroughput.WriteCapacityUnits),
				},
			})
		}
		input.GlobalSecondaryIndexes = gsis
	}

	return input
}
