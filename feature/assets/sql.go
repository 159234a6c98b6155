package assets

import (
	"errors"
	"fmt"
)

// SQLAttributes are shared by the relational asset types.
type SQLAttributes struct {
	DatabaseName          *string `json:"databaseName,omitempty"`
	DatabaseQualifiedName *string `json:"databaseQualifiedName,omitempty"`
	SchemaName            *string `json:"schemaName,omitempty"`
	SchemaQualifiedName   *string `json:"schemaQualifiedName,omitempty"`
	TableName             *string `json:"tableName,omitempty"`
	TableQualifiedName    *string `json:"tableQualifiedName,omitempty"`
	ViewName              *string `json:"viewName,omitempty"`
	ViewQualifiedName     *string `json:"viewQualifiedName,omitempty"`
	QueryCount            *int64  `json:"queryCount,omitempty"`
	IsProfiled            *bool   `json:"isProfiled,omitempty"`
	LastProfiledAt        *int64  `json:"lastProfiledAt,omitempty"`
}

// DatabaseAttributes are the attributes of a Database.
type DatabaseAttributes struct {
	AssetAttributes
	SQLAttributes
	SchemaCount *int         `json:"schemaCount,omitempty"`
	Schemas     []*Reference `json:"schemas,omitempty"`
}

// Database is a database within a connection.
type Database struct {
	Entity
	Attributes DatabaseAttributes
}

// NewDatabase builds a database under a connection.
func NewDatabase(name, connectionQualifiedName string) (*Database, error) {
	if name == "" || connectionQualifiedName == "" {
		return nil, errors.New("database name and connection qualified name are required")
	}
	if ConnectionOf(connectionQualifiedName) != connectionQualifiedName {
		return nil, fmt.Errorf("%q is not a connection qualified name", connectionQualifiedName)
	}
	d := DatabaseUpdater(connectionQualifiedName+"/"+name, name)
	stampConnection(&d.Attributes.AssetAttributes, connectionQualifiedName)
	return d, nil
}

// DatabaseUpdater returns the minimal database needed to update one.
func DatabaseUpdater(qualifiedName, name string) *Database {
	d := &Database{Entity: Entity{TypeName: TypeDatabase}}
	d.Attributes.QualifiedName = Ptr(qualifiedName)
	d.Attributes.Name = Ptr(name)
	return d
}

func (d *Database) Common() *AssetAttributes { return &d.Attributes.AssetAttributes }
func (d *Database) AttributeSet() any        { return &d.Attributes }

func (d *Database) MarshalJSON() ([]byte, error) {
	return marshalEntity(&d.Entity, &d.Attributes)
}

func (d *Database) UnmarshalJSON(data []byte) error {
	_, err := unmarshalEntity(data, &d.Entity, &d.Attributes)
	return err
}

// SchemaAttributes are the attributes of a Schema.
type SchemaAttributes struct {
	AssetAttributes
	SQLAttributes
	TableCount *int         `json:"tableCount,omitempty"`
	ViewsCount *int         `json:"viewsCount,omitempty"`
	Database   *Reference   `json:"database,omitempty"`
	Tables     []*Reference `json:"tables,omitempty"`
	Views      []*Reference `json:"views,omitempty"`
}

// Schema is a schema within a database.
type Schema struct {
	Entity
	Attributes SchemaAttributes
}

// NewSchema builds a schema under a database.
func NewSchema(name, databaseQualifiedName string) (*Schema, error) {
	if name == "" || databaseQualifiedName == "" {
		return nil, errors.New("schema name and database qualified name are required")
	}
	if ConnectionOf(databaseQualifiedName) == "" {
		return nil, fmt.Errorf("%q is not under a connection", databaseQualifiedName)
	}
	s := SchemaUpdater(databaseQualifiedName+"/"+name, name)
	stampConnection(&s.Attributes.AssetAttributes, databaseQualifiedName)
	s.Attributes.DatabaseName = Ptr(lastSegment(databaseQualifiedName))
	s.Attributes.DatabaseQualifiedName = Ptr(databaseQualifiedName)
	s.Attributes.Database = RefByQualifiedName(TypeDatabase, databaseQualifiedName)
	return s, nil
}

// SchemaUpdater returns the minimal schema needed to update one.
func SchemaUpdater(qualifiedName, name string) *Schema {
	s := &Schema{Entity: Entity{TypeName: TypeSchema}}
	s.Attributes.QualifiedName = Ptr(qualifiedName)
	s.Attributes.Name = Ptr(name)
	return s
}

func (s *Schema) Common() *AssetAttributes { return &s.Attributes.AssetAttributes }
func (s *Schema) AttributeSet() any        { return &s.Attributes }

func (s *Schema) MarshalJSON() ([]byte, error) {
	return marshalEntity(&s.Entity, &s.Attributes)
}

func (s *Schema) UnmarshalJSON(data []byte) error {
	_, err := unmarshalEntity(data, &s.Entity, &s.Attributes)
	return err
}

// stampSchemaParent fills the database and schema attributes of an asset
// directly under a schema.
func stampSchemaParent(a *AssetAttributes, sql *SQLAttributes, schemaQualifiedName string) {
	stampConnection(a, schemaQualifiedName)
	dbQN := ParentOf(schemaQualifiedName)
	sql.DatabaseName = Ptr(lastSegment(dbQN))
	sql.DatabaseQualifiedName = Ptr(dbQN)
	sql.SchemaName = Ptr(lastSegment(schemaQualifiedName))
	sql.SchemaQualifiedName = Ptr(schemaQualifiedName)
}

// TableAttributes are the attributes of a Table.
type TableAttributes struct {
	AssetAttributes
	SQLAttributes
	ColumnCount   *int64       `json:"columnCount,omitempty"`
	RowCount      *int64       `json:"rowCount,omitempty"`
	SizeBytes     *int64       `json:"sizeBytes,omitempty"`
	IsPartitioned *bool        `json:"isPartitioned,omitempty"`
	IsTemporary   *bool        `json:"isTemporary,omitempty"`
	Schema        *Reference   `json:"atlanSchema,omitempty"`
	Columns       []*Reference `json:"columns,omitempty"`
}

// Table is a table within a schema.
type Table struct {
	Entity
	Attributes TableAttributes
}

// NewTable builds a table under a schema.
func NewTable(name, schemaQualifiedName string) (*Table, error) {
	if name == "" || schemaQualifiedName == "" {
		return nil, errors.New("table name and schema qualified name are required")
	}
	if prefix(schemaQualifiedName, 5) != schemaQualifiedName || ConnectionOf(schemaQualifiedName) == "" {
		return nil, fmt.Errorf("%q is not a schema qualified name", schemaQualifiedName)
	}
	t := TableUpdater(schemaQualifiedName+"/"+name, name)
	stampSchemaParent(&t.Attributes.AssetAttributes, &t.Attributes.SQLAttributes, schemaQualifiedName)
	t.Attributes.Schema = RefByQualifiedName(TypeSchema, schemaQualifiedName)
	return t, nil
}

// TableUpdater returns the minimal table needed to update one.
func TableUpdater(qualifiedName, name string) *Table {
	t := &Table{Entity: Entity{TypeName: TypeTable}}
	t.Attributes.QualifiedName = Ptr(qualifiedName)
	t.Attributes.Name = Ptr(name)
	return t
}

func (t *Table) Common() *AssetAttributes { return &t.Attributes.AssetAttributes }
func (t *Table) AttributeSet() any        { return &t.Attributes }

func (t *Table) MarshalJSON() ([]byte, error) {
	return marshalEntity(&t.Entity, &t.Attributes)
}

func (t *Table) UnmarshalJSON(data []byte) error {
	_, err := unmarshalEntity(data, &t.Entity, &t.Attributes)
	return err
}

// ViewAttributes are the attributes of a View.
type ViewAttributes struct {
	AssetAttributes
	SQLAttributes
	ColumnCount *int64       `json:"columnCount,omitempty"`
	Definition  *string      `json:"definition,omitempty"`
	Schema      *Reference   `json:"atlanSchema,omitempty"`
	Columns     []*Reference `json:"columns,omitempty"`
}

// View is a view within a schema.
type View struct {
	Entity
	Attributes ViewAttributes
}

// NewView builds a view under a schema.
func NewView(name, schemaQualifiedName string) (*View, error) {
	if name == "" || schemaQualifiedName == "" {
		return nil, errors.New("view name and schema qualified name are required")
	}
	if prefix(schemaQualifiedName, 5) != schemaQualifiedName || ConnectionOf(schemaQualifiedName) == "" {
		return nil, fmt.Errorf("%q is not a schema qualified name", schemaQualifiedName)
	}
	v := ViewUpdater(schemaQualifiedName+"/"+name, name)
	stampSchemaParent(&v.Attributes.AssetAttributes, &v.Attributes.SQLAttributes, schemaQualifiedName)
	v.Attributes.Schema = RefByQualifiedName(TypeSchema, schemaQualifiedName)
	return v, nil
}

// ViewUpdater returns the minimal view needed to update one.
func ViewUpdater(qualifiedName, name string) *View {
	v := &View{Entity: Entity{TypeName: TypeView}}
	v.Attributes.QualifiedName = Ptr(qualifiedName)
	v.Attributes.Name = Ptr(name)
	return v
}

func (v *View) Common() *AssetAttributes { return &v.Attributes.AssetAttributes }
func (v *View) AttributeSet() any        { return &v.Attributes }

func (v *View) MarshalJSON() ([]byte, error) {
	return marshalEntity(&v.Entity, &v.Attributes)
}

func (v *View) UnmarshalJSON(data []byte) error {
	_, err := unmarshalEntity(data, &v.Entity, &v.Attributes)
	return err
}

// ColumnAttributes are the attributes of a Column.
type ColumnAttributes struct {
	AssetAttributes
	SQLAttributes
	DataType         *string    `json:"dataType,omitempty"`
	Order            *int       `json:"order,omitempty"`
	IsNullable       *bool      `json:"isNullable,omitempty"`
	IsPrimary        *bool      `json:"isPrimary,omitempty"`
	IsForeign        *bool      `json:"isForeign,omitempty"`
	MaxLength        *int64     `json:"maxLength,omitempty"`
	Precision        *int       `json:"precision,omitempty"`
	NumericScale     *float64   `json:"numericScale,omitempty"`
	Table            *Reference `json:"table,omitempty"`
	View             *Reference `json:"view,omitempty"`
	MaterialisedView *Reference `json:"materialisedView,omitempty"`
}

// Column is a column of a table, view or materialised view.
type Column struct {
	Entity
	Attributes ColumnAttributes
}

// NewColumn builds a column under its parent. parentType must be Table, View
// or MaterialisedView; order is the 1-based position of the column.
func NewColumn(name, parentType, parentQualifiedName string, order int) (*Column, error) {
	if name == "" || parentQualifiedName == "" {
		return nil, errors.New("column name and parent qualified name are required")
	}
	if prefix(parentQualifiedName, 6) != parentQualifiedName || ConnectionOf(parentQualifiedName) == "" {
		return nil, fmt.Errorf("%q is not a table or view qualified name", parentQualifiedName)
	}
	c := ColumnUpdater(parentQualifiedName+"/"+name, name)
	c.Attributes.Order = Ptr(order)
	schemaQN := ParentOf(parentQualifiedName)
	stampSchemaParent(&c.Attributes.AssetAttributes, &c.Attributes.SQLAttributes, schemaQN)
	parentName := lastSegment(parentQualifiedName)
	ref := RefByQualifiedName(parentType, parentQualifiedName)
	switch parentType {
	case TypeTable:
		c.Attributes.TableName = Ptr(parentName)
		c.Attributes.TableQualifiedName = Ptr(parentQualifiedName)
		c.Attributes.Table = ref
	case TypeView:
		c.Attributes.ViewName = Ptr(parentName)
		c.Attributes.ViewQualifiedName = Ptr(parentQualifiedName)
		c.Attributes.View = ref
	case TypeMaterialisedView:
		c.Attributes.ViewName = Ptr(parentName)
		c.Attributes.ViewQualifiedName = Ptr(parentQualifiedName)
		c.Attributes.MaterialisedView = ref
	default:
		return nil, fmt.Errorf("unsupported column parent type %q", parentType)
	}
	return c, nil
}

// ColumnUpdater returns the minimal column needed to update one.
func ColumnUpdater(qualifiedName, name string) *Column {
	c := &Column{Entity: Entity{TypeName: TypeColumn}}
	c.Attributes.QualifiedName = Ptr(qualifiedName)
	c.Attributes.Name = Ptr(name)
	return c
}

func (c *Column) Common() *AssetAttributes { return &c.Attributes.AssetAttributes }
func (c *Column) AttributeSet() any        { return &c.Attributes }

func (c *Column) MarshalJSON() ([]byte, error) {
	return marshalEntity(&c.Entity, &c.Attributes)
}

func (c *Column) UnmarshalJSON(data []byte) error {
	_, err := unmarshalEntity(data, &c.Entity, &c.Attributes)
	return err
}
