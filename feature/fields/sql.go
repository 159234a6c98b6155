package fields

// Fields of relational assets.
var (
	DatabaseName          = register(NewKeywordTextField("databaseName", "databaseName.keyword", "databaseName"))
	DatabaseQualifiedName = register(NewKeywordField("databaseQualifiedName", "databaseQualifiedName"))
	SchemaName            = register(NewKeywordTextField("schemaName", "schemaName.keyword", "schemaName"))
	SchemaQualifiedName   = register(NewKeywordField("schemaQualifiedName", "schemaQualifiedName"))
	TableName             = register(NewKeywordTextField("tableName", "tableName.keyword", "tableName"))
	TableQualifiedName    = register(NewKeywordField("tableQualifiedName", "tableQualifiedName"))
	ViewName              = register(NewKeywordTextField("viewName", "viewName.keyword", "viewName"))
	ViewQualifiedName     = register(NewKeywordField("viewQualifiedName", "viewQualifiedName"))
	QueryCount            = register(NewNumericField("queryCount", "queryCount"))
	IsProfiled            = register(NewBooleanField("isProfiled", "isProfiled"))
)

// Database fields.
var (
	SchemaCount     = register(NewNumericField("schemaCount", "schemaCount"))
	DatabaseSchemas = register(NewRelationField("schemas"))
)

// Schema fields.
var (
	TableCount     = register(NewNumericField("tableCount", "tableCount"))
	ViewCount      = register(NewNumericField("viewsCount", "viewsCount"))
	SchemaDatabase = register(NewRelationField("database"))
	SchemaTables   = register(NewRelationField("tables"))
	SchemaViews    = register(NewRelationField("views"))
)

// Table and view fields.
var (
	ColumnCount   = register(NewNumericField("columnCount", "columnCount"))
	RowCount      = register(NewNumericField("rowCount", "rowCount"))
	SizeBytes     = register(NewNumericField("sizeBytes", "sizeBytes"))
	IsPartitioned = register(NewBooleanField("isPartitioned", "isPartitioned"))
	Definition    = register(NewTextField("definition", "definition"))
	TableSchema   = register(NewRelationField("atlanSchema"))
	TableColumns  = register(NewRelationField("columns"))
)

// Column fields.
var (
	DataType    = register(NewKeywordTextField("dataType", "dataType", "dataType.text"))
	Order       = register(NewNumericField("order", "order"))
	IsNullable  = register(NewBooleanField("isNullable", "isNullable"))
	IsPrimary   = register(NewBooleanField("isPrimary", "isPrimary"))
	IsForeign   = register(NewBooleanField("isForeign", "isForeign"))
	MaxLength   = register(NewNumericField("maxLength", "maxLength"))
	Precision   = register(NewNumericField("precision", "precision"))
	ColumnTable = register(NewRelationField("table"))
	ColumnView  = register(NewRelationField("view"))
)

// Connection fields.
var (
	Category    = register(NewKeywordField("category", "category"))
	AdminUsers  = register(NewKeywordField("adminUsers", "adminUsers"))
	AdminGroups = register(NewKeywordField("adminGroups", "adminGroups"))
	AdminRoles  = register(NewKeywordField("adminRoles", "adminRoles"))
	Host        = register(NewKeywordField("host", "host"))
	Port        = register(NewNumericField("port", "port"))
	AllowQuery  = register(NewBooleanField("allowQuery", "allowQuery"))
)
