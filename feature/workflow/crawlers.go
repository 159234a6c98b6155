package workflow

import "atlan-sdk/feature/assets"

var (
	snowflakePackage = packageInfo{name: SnowflakePackage, prefix: "atlan-snowflake", connector: assets.ConnectorSnowflake, title: "Snowflake Assets"}
	postgresPackage  = packageInfo{name: PostgresPackage, prefix: "atlan-postgres", connector: assets.ConnectorPostgres, title: "Postgres Assets"}
	bigQueryPackage  = packageInfo{name: BigQueryPackage, prefix: "atlan-bigquery", connector: assets.ConnectorBigQuery, title: "BigQuery Assets"}
	tableauPackage   = packageInfo{name: TableauPackage, prefix: "atlan-tableau", connector: assets.ConnectorTableau, title: "Tableau Assets"}
)

// Package names accepted by Service.FindByType.
const (
	SnowflakePackage = "@atlan/snowflake"
	PostgresPackage  = "@atlan/postgres"
	BigQueryPackage  = "@atlan/bigquery"
	TableauPackage   = "@atlan/tableau"
)

// SnowflakeSource selects where Snowflake metadata is read from.
type SnowflakeSource string

const (
	SnowflakeInformationSchema SnowflakeSource = "information-schema"
	SnowflakeAccountUsage      SnowflakeSource = "account-usage"
)

// SnowflakeCrawler crawls databases, schemas, tables and views of a
// Snowflake account. Basic and key-pair credentials are supported.
type SnowflakeCrawler struct {
	Connection ConnectionSpec
	Credential Credential `validate:"-"`
	// Hostname is the account host, e.g. acme.snowflakecomputing.com.
	Hostname  string `validate:"required,hostname"`
	Role      string `validate:"required"`
	Warehouse string `validate:"required"`
	// Source defaults to the information schema.
	Source               SnowflakeSource `validate:"omitempty,oneof=information-schema account-usage"`
	AccountUsageDatabase string          `validate:"required_if=Source account-usage"`
	AccountUsageSchema   string          `validate:"required_if=Source account-usage"`
	// Include and Exclude map database names to schema names.
	Include map[string][]string
	Exclude map[string][]string
	Lineage bool
	Tags    bool
}

// ToWorkflow validates the crawler and builds its workflow.
func (c SnowflakeCrawler) ToWorkflow() (*Workflow, error) {
	if err := checkStruct("snowflake crawler", c); err != nil {
		return nil, err
	}
	if err := checkAuth(c.Credential, AuthBasic, AuthKeyPair); err != nil {
		return nil, err
	}
	conn, err := c.Connection.build(snowflakePackage.connector)
	if err != nil {
		return nil, err
	}

	cred := c.Credential
	cred.Host, cred.Port = c.Hostname, 443
	cred.Extra = withExtra(cred.Extra, map[string]any{"role": c.Role, "warehouse": c.Warehouse})

	params := []Parameter{{Name: "extraction-method", Value: "default"}}
	if c.Source == SnowflakeAccountUsage {
		params = []Parameter{
			{Name: "extraction-method", Value: string(SnowflakeAccountUsage)},
			{Name: "account-usage-database-name", Value: c.AccountUsageDatabase},
			{Name: "account-usage-schema-name", Value: c.AccountUsageSchema},
		}
	}
	params, err = filterParams(params, c.Include, c.Exclude)
	if err != nil {
		return nil, err
	}
	params = append(params,
		boolParam("enable-lineage", c.Lineage),
		boolParam("enable-snowflake-tag", c.Tags),
		Parameter{Name: "control-config-strategy", Value: "default"},
	)
	return assemble(snowflakePackage, conn, cred, params)
}

// PostgresCrawler crawls a PostgreSQL database with basic authentication.
type PostgresCrawler struct {
	Connection ConnectionSpec
	Credential Credential `validate:"-"`
	Hostname   string     `validate:"required"`
	// Port defaults to 5432.
	Port     int    `validate:"omitempty,gt=0,lt=65536"`
	Database string `validate:"required"`
	// Include and Exclude map database names to schema names.
	Include map[string][]string
	Exclude map[string][]string
	// TempTableRegex excludes matching tables, e.g. "TMP.*|TEMP.*".
	TempTableRegex       string
	SourceLevelFiltering bool
	JDBCInternalMethods  bool
}

// ToWorkflow validates the crawler and builds its workflow.
func (c PostgresCrawler) ToWorkflow() (*Workflow, error) {
	if err := checkStruct("postgres crawler", c); err != nil {
		return nil, err
	}
	if err := checkAuth(c.Credential, AuthBasic); err != nil {
		return nil, err
	}
	conn, err := c.Connection.build(postgresPackage.connector)
	if err != nil {
		return nil, err
	}

	cred := c.Credential
	cred.Host, cred.Port = c.Hostname, c.Port
	if cred.Port == 0 {
		cred.Port = 5432
	}
	cred.Extra = withExtra(cred.Extra, map[string]any{"database": c.Database})

	params, err := filterParams([]Parameter{{Name: "extraction-method", Value: "direct"}}, c.Include, c.Exclude)
	if err != nil {
		return nil, err
	}
	params = append(params,
		Parameter{Name: "temp-table-regex", Value: c.TempTableRegex},
		boolParam("use-source-schema-filtering", c.SourceLevelFiltering),
		boolParam("use-jdbc-internal-methods", c.JDBCInternalMethods),
	)
	return assemble(postgresPackage, conn, cred, params)
}

// BigQueryCrawler crawls the datasets of a Google Cloud project with a
// service account.
type BigQueryCrawler struct {
	Connection ConnectionSpec
	Credential Credential `validate:"-"`
	ProjectID  string     `validate:"required"`
	// Include and Exclude map project IDs to dataset names.
	Include        map[string][]string
	Exclude        map[string][]string
	TempTableRegex string
}

// ToWorkflow validates the crawler and builds its workflow.
func (c BigQueryCrawler) ToWorkflow() (*Workflow, error) {
	if err := checkStruct("bigquery crawler", c); err != nil {
		return nil, err
	}
	if err := checkAuth(c.Credential, AuthServiceAccount); err != nil {
		return nil, err
	}
	if c.Credential.Password == "" {
		return nil, errNoCredential
	}
	conn, err := c.Connection.build(bigQueryPackage.connector)
	if err != nil {
		return nil, err
	}

	cred := c.Credential
	cred.Host, cred.Port = "https://www.googleapis.com/bigquery/v2", 443
	cred.Extra = withExtra(cred.Extra, map[string]any{"project_id": c.ProjectID})

	params, err := filterParams(nil, c.Include, c.Exclude)
	if err != nil {
		return nil, err
	}
	params = append(params, Parameter{Name: "temp-table-regex", Value: c.TempTableRegex})
	return assemble(bigQueryPackage, conn, cred, params)
}

// TableauCrawler crawls the projects, workbooks and dashboards of a
// Tableau site. Basic and personal access token credentials are supported.
type TableauCrawler struct {
	Connection ConnectionSpec
	Credential Credential `validate:"-"`
	Hostname   string     `validate:"required"`
	// Port defaults to 443.
	Port       int `validate:"omitempty,gt=0,lt=65536"`
	Site       string
	SSLEnabled bool
	// IncludeProjects and ExcludeProjects hold project GUIDs.
	IncludeProjects   []string
	ExcludeProjects   []string
	CrawlHiddenFields bool
	CrawlUnpublished  bool
	AlternateHost     string `validate:"omitempty,url"`
}

// ToWorkflow validates the crawler and builds its workflow.
func (c TableauCrawler) ToWorkflow() (*Workflow, error) {
	if err := checkStruct("tableau crawler", c); err != nil {
		return nil, err
	}
	if err := checkAuth(c.Credential, AuthBasic, AuthPersonalAccessToken); err != nil {
		return nil, err
	}
	conn, err := c.Connection.build(tableauPackage.connector)
	if err != nil {
		return nil, err
	}

	cred := c.Credential
	cred.Host, cred.Port = c.Hostname, c.Port
	if cred.Port == 0 {
		cred.Port = 443
	}
	protocol := "http"
	if c.SSLEnabled {
		protocol = "https"
	}
	cred.Extra = withExtra(cred.Extra, map[string]any{"protocol": protocol, "defaultSite": c.Site})

	include, err := idFilter(c.IncludeProjects)
	if err != nil {
		return nil, err
	}
	exclude, err := idFilter(c.ExcludeProjects)
	if err != nil {
		return nil, err
	}
	params := []Parameter{
		{Name: "extraction-method", Value: "direct"},
		{Name: "include-filter", Value: include},
		{Name: "exclude-filter", Value: exclude},
		boolParam("crawl-hidden-datasource-fields", c.CrawlHiddenFields),
		boolParam("crawl-unpublished-worksheets-dashboard", c.CrawlUnpublished),
		{Name: "alternate-host", Value: c.AlternateHost},
		boolParam("ssl-enabled", c.SSLEnabled),
	}
	return assemble(tableauPackage, conn, cred, params)
}
