package models

import (
	"time"

	"github.com/margh00b/woodtrack_backend/config"
)

// The list screens read denormalized server-side views, not the raw tables.
// Each view is a pre-joined, flattened projection the query compiler targets
// directly.

const (
	ResourcePlantMaster   = "plantMaster"
	ResourcePlantShipping = "plantShipping"
	ResourceInspection    = "inspection"
	ResourceSales         = "sales"
	ResourceBackorders    = "backorders"
	ResourceInvoices      = "invoices"
	ResourceServiceOrders = "serviceOrders"
)

// PlantMasterRow is one row of plant_master_view: jobs and service orders
// unioned into the plant's single work list.
type PlantMasterRow struct {
	SourceType string `json:"source_type"` // JOB or SERVICE
	SourceId   int    `json:"source_id"`
	JobId      int    `json:"job_id"`
	JobNumber  string `json:"job_number"`
	ClientName string `json:"client_name"`
	IsRush     bool   `json:"is_rush"`

	InPlantDate        *time.Time `json:"in_plant_date"`
	InPlantActual      *time.Time `json:"in_plant_actual"`
	DoorsDate          *time.Time `json:"doors_date"`
	DoorsActual        *time.Time `json:"doors_actual"`
	CutFinishDate      *time.Time `json:"cut_finish_date"`
	CutFinishActual    *time.Time `json:"cut_finish_actual"`
	CustomFinishDate   *time.Time `json:"custom_finish_date"`
	CustomFinishActual *time.Time `json:"custom_finish_actual"`
	DrawerDate         *time.Time `json:"drawer_date"`
	DrawerActual       *time.Time `json:"drawer_actual"`
	CutMelamineDate    *time.Time `json:"cut_melamine_date"`
	CutMelamineActual  *time.Time `json:"cut_melamine_actual"`
	PaintDate          *time.Time `json:"paint_date"`
	PaintActual        *time.Time `json:"paint_actual"`
	AssemblyDate       *time.Time `json:"assembly_date"`
	AssemblyActual     *time.Time `json:"assembly_actual"`

	ShipDate          *time.Time `json:"ship_date"`
	ShipStatus        ShipStatus `json:"ship_status"`
	BoxAssembledCount int        `json:"box_assembled_count"`
}

// PlantShippingRow is one row of plant_shipping_view.
type PlantShippingRow struct {
	JobId            int        `json:"job_id"`
	JobNumber        string     `json:"job_number"`
	ClientName       string     `json:"client_name"`
	ShipDate         *time.Time `json:"ship_date"`
	ShipStatus       ShipStatus `json:"ship_status"`
	HasShipped       bool       `json:"has_shipped"`
	PartiallyShipped bool       `json:"partially_shipped"`
	Wrapped          bool       `json:"wrapped"`
	WrapCompleted    *time.Time `json:"wrap_completed"`
	InWarehouse      *time.Time `json:"in_warehouse"`
	OpenBackorders   int        `json:"open_backorders"`
}

// InspectionRow is one row of inspection_view.
type InspectionRow struct {
	JobId                 int        `json:"job_id"`
	JobNumber             string     `json:"job_number"`
	ClientName            string     `json:"client_name"`
	InstallerCompany      string     `json:"installer_company"`
	InstallerFirstName    string     `json:"installer_first_name"`
	InstallerLastName     string     `json:"installer_last_name"`
	InspectionScheduled   *time.Time `json:"inspection_scheduled"`
	InspectionCompleted   *time.Time `json:"inspection_completed"`
	InstallationScheduled *time.Time `json:"installation_scheduled"`
	InstallationCompleted *time.Time `json:"installation_completed"`
	SiteChangesDetail     string     `json:"site_changes_detail"`
}

// SalesRow is one row of sales_view.
type SalesRow struct {
	JobId       int        `json:"job_id"`
	JobNumber   string     `json:"job_number"`
	ClientName  string     `json:"client_name"`
	OrderNumber string     `json:"order_number"`
	SoldDate    *time.Time `json:"sold_date"`
}

var resourceRegistry = map[string]*ResourceSpec{
	ResourcePlantMaster: {
		Name:  ResourcePlantMaster,
		Table: "plant_master_view",
		Fields: map[string]FieldSpec{
			"jobNumber":  {Kind: KindText, Columns: []string{"job_number"}},
			"clientName": {Kind: KindText, Columns: []string{"client_name"}},
			"shipStatus": {Kind: KindExact, Columns: []string{"ship_status"}},
			"rush":       {Kind: KindExact, Columns: []string{"is_rush"}},
			"sourceType": {Kind: KindExact, Columns: []string{"source_type"}},
			"shipDate":   {Kind: KindDateRange, Columns: []string{"ship_date"}},
		},
		Sortable: map[string]string{
			"jobNumber":  "job_number",
			"clientName": "client_name",
			"shipDate":   "ship_date",
		},
		DefaultSort: "ship_date ASC",
		StableKey:   "source_id DESC",
	},
	ResourcePlantShipping: {
		Name:  ResourcePlantShipping,
		Table: "plant_shipping_view",
		Fields: map[string]FieldSpec{
			"jobNumber":  {Kind: KindText, Columns: []string{"job_number"}},
			"clientName": {Kind: KindText, Columns: []string{"client_name"}},
			"shipStatus": {Kind: KindExact, Columns: []string{"ship_status"}},
			"shipped":    {Kind: KindExact, Columns: []string{"has_shipped"}},
			"wrapped":    {Kind: KindExact, Columns: []string{"wrapped"}},
			"shipDate":   {Kind: KindDateRange, Columns: []string{"ship_date"}},
		},
		Sortable: map[string]string{
			"jobNumber":  "job_number",
			"clientName": "client_name",
			"shipDate":   "ship_date",
		},
		DefaultSort: "ship_date ASC",
		StableKey:   "job_id DESC",
	},
	ResourceInspection: {
		Name:  ResourceInspection,
		Table: "inspection_view",
		Fields: map[string]FieldSpec{
			"jobNumber":  {Kind: KindText, Columns: []string{"job_number"}},
			"clientName": {Kind: KindText, Columns: []string{"client_name"}},
			"installer": {Kind: KindTextMulti, Columns: []string{
				"installer_company", "installer_first_name", "installer_last_name",
			}},
			"inspectionScheduled":   {Kind: KindDateRange, Columns: []string{"inspection_scheduled"}},
			"installationScheduled": {Kind: KindDateRange, Columns: []string{"installation_scheduled"}},
		},
		Sortable: map[string]string{
			"jobNumber":             "job_number",
			"clientName":            "client_name",
			"inspectionScheduled":   "inspection_scheduled",
			"installationScheduled": "installation_scheduled",
		},
		DefaultSort: "installation_scheduled ASC",
		StableKey:   "job_id DESC",
	},
	ResourceSales: {
		Name:  ResourceSales,
		Table: "sales_view",
		Fields: map[string]FieldSpec{
			"jobNumber":   {Kind: KindText, Columns: []string{"job_number"}},
			"clientName":  {Kind: KindText, Columns: []string{"client_name"}},
			"orderNumber": {Kind: KindText, Columns: []string{"order_number"}},
			"soldDate":    {Kind: KindDateRange, Columns: []string{"sold_date"}},
		},
		Sortable: map[string]string{
			"jobNumber":  "job_number",
			"clientName": "client_name",
			"soldDate":   "sold_date",
		},
		DefaultSort: "sold_date DESC",
		StableKey:   "job_id DESC",
	},
	ResourceBackorders: {
		Name:   ResourceBackorders,
		Table:  "backorders",
		Select: "backorders.*",
		Fields: map[string]FieldSpec{
			"jobNumber": {
				Kind:    KindText,
				Columns: []string{"jobs.job_number"},
				Join: &JoinSpec{
					Name:        "jobs",
					InnerClause: "JOIN jobs ON jobs.id = backorders.job_id",
					LeftClause:  "LEFT JOIN jobs ON jobs.id = backorders.job_id",
				},
				ForceInner: true,
			},
			"complete": {Kind: KindExact, Columns: []string{"backorders.complete"}},
			"dueDate":  {Kind: KindDateRange, Columns: []string{"backorders.due_date"}},
		},
		Sortable: map[string]string{
			"dueDate": "backorders.due_date",
		},
		DefaultSort: "backorders.due_date ASC",
		StableKey:   "backorders.id DESC",
	},
	ResourceInvoices: {
		Name:   ResourceInvoices,
		Table:  "invoices",
		Select: "invoices.*",
		Fields: map[string]FieldSpec{
			"jobNumber": {
				Kind:    KindText,
				Columns: []string{"jobs.job_number"},
				Join: &JoinSpec{
					Name:        "jobs",
					InnerClause: "JOIN jobs ON jobs.id = invoices.job_id",
					LeftClause:  "LEFT JOIN jobs ON jobs.id = invoices.job_id",
				},
				ForceInner: true,
			},
			"invoiceNumber": {Kind: KindText, Columns: []string{"invoices.invoice_number"}},
			"noCharge":      {Kind: KindExact, Columns: []string{"invoices.no_charge"}},
			"paidDate":      {Kind: KindDateRange, Columns: []string{"invoices.paid_at"}},
		},
		Sortable: map[string]string{
			"invoiceNumber": "invoices.invoice_number",
			"paidDate":      "invoices.paid_at",
		},
		DefaultSort: "invoices.created_at DESC",
		StableKey:   "invoices.id DESC",
	},
	ResourceServiceOrders: {
		Name:   ResourceServiceOrders,
		Table:  "service_orders",
		Select: "service_orders.*",
		Fields: map[string]FieldSpec{
			"jobNumber": {
				Kind:    KindText,
				Columns: []string{"jobs.job_number"},
				Join: &JoinSpec{
					Name:        "jobs",
					InnerClause: "JOIN jobs ON jobs.id = service_orders.job_id",
					LeftClause:  "LEFT JOIN jobs ON jobs.id = service_orders.job_id",
				},
				ForceInner: true,
			},
			"description":   {Kind: KindText, Columns: []string{"service_orders.description"}},
			"completedDate": {Kind: KindDateRange, Columns: []string{"service_orders.completed_at"}},
		},
		Sortable: map[string]string{
			"completedDate": "service_orders.completed_at",
		},
		DefaultSort: "service_orders.created_at DESC",
		StableKey:   "service_orders.id DESC",
	},
}

// ListResources reports the registered list resource names.
func ListResources() []string {
	names := make([]string, 0, len(resourceRegistry))
	for name := range resourceRegistry {
		names = append(names, name)
	}
	return names
}

// GetResourceSpec returns the registered spec for a list resource.
func GetResourceSpec(name string) (*ResourceSpec, bool) {
	spec, ok := resourceRegistry[name]
	return spec, ok
}

const clientNameExpr = "COALESCE(NULLIF(clients.company_name, ''), CONCAT(clients.first_name, ' ', clients.last_name))"

// MigrateViews (re)creates the read-only projections the list screens query.
func MigrateViews() error {
	db := config.GetDB()

	statements := []string{
		`CREATE OR REPLACE VIEW plant_master_view AS
SELECT
    'JOB' AS source_type,
    production_schedules.id AS source_id,
    jobs.id AS job_id,
    jobs.job_number,
    ` + clientNameExpr + ` AS client_name,
    production_schedules.is_rush,
    production_schedules.in_plant_date, production_schedules.in_plant_actual,
    production_schedules.doors_date, production_schedules.doors_actual,
    production_schedules.cut_finish_date, production_schedules.cut_finish_actual,
    production_schedules.custom_finish_date, production_schedules.custom_finish_actual,
    production_schedules.drawer_date, production_schedules.drawer_actual,
    production_schedules.cut_melamine_date, production_schedules.cut_melamine_actual,
    production_schedules.paint_date, production_schedules.paint_actual,
    production_schedules.assembly_date, production_schedules.assembly_actual,
    production_schedules.ship_date,
    production_schedules.ship_status,
    production_schedules.box_assembled_count
FROM production_schedules
JOIN jobs ON jobs.id = production_schedules.job_id
JOIN clients ON clients.id = jobs.client_id
UNION ALL
SELECT
    'SERVICE' AS source_type,
    service_orders.id AS source_id,
    jobs.id AS job_id,
    jobs.job_number,
    ` + clientNameExpr + ` AS client_name,
    FALSE AS is_rush,
    NULL, NULL, NULL, NULL, NULL, NULL, NULL, NULL,
    NULL, NULL, NULL, NULL, NULL, NULL, NULL, NULL,
    NULL AS ship_date,
    'Unprocessed' AS ship_status,
    0 AS box_assembled_count
FROM service_orders
JOIN jobs ON jobs.id = service_orders.job_id
JOIN clients ON clients.id = jobs.client_id
WHERE service_orders.completed_at IS NULL`,

		`CREATE OR REPLACE VIEW plant_shipping_view AS
SELECT
    jobs.id AS job_id,
    jobs.job_number,
    ` + clientNameExpr + ` AS client_name,
    production_schedules.ship_date,
    production_schedules.ship_status,
    installations.has_shipped,
    installations.partially_shipped,
    (installations.wrap_completed IS NOT NULL) AS wrapped,
    installations.wrap_completed,
    installations.in_warehouse,
    (SELECT COUNT(*) FROM backorders
     WHERE backorders.job_id = jobs.id AND backorders.complete = FALSE) AS open_backorders
FROM jobs
JOIN clients ON clients.id = jobs.client_id
LEFT JOIN production_schedules ON production_schedules.job_id = jobs.id
LEFT JOIN installations ON installations.job_id = jobs.id`,

		`CREATE OR REPLACE VIEW inspection_view AS
SELECT
    jobs.id AS job_id,
    jobs.job_number,
    ` + clientNameExpr + ` AS client_name,
    COALESCE(installers.company_name, '') AS installer_company,
    COALESCE(installers.first_name, '') AS installer_first_name,
    COALESCE(installers.last_name, '') AS installer_last_name,
    installations.inspection_scheduled,
    installations.inspection_completed,
    installations.installation_scheduled,
    installations.installation_completed,
    installations.site_changes_detail
FROM installations
JOIN jobs ON jobs.id = installations.job_id
JOIN clients ON clients.id = jobs.client_id
LEFT JOIN installers ON installers.id = installations.installer_id`,

		`CREATE OR REPLACE VIEW sales_view AS
SELECT
    jobs.id AS job_id,
    jobs.job_number,
    ` + clientNameExpr + ` AS client_name,
    sales_orders.order_number,
    sales_orders.sold_date
FROM jobs
JOIN clients ON clients.id = jobs.client_id
LEFT JOIN sales_orders ON sales_orders.job_id = jobs.id`,
	}

	for _, statement := range statements {
		if err := db.Exec(statement).Error; err != nil {
			return err
		}
	}
	return nil
}
