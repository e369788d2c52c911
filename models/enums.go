package models

// ShipStatus is the plant-side scheduling state of a job's shipment slot.
type ShipStatus string

const (
	ShipStatusUnprocessed ShipStatus = "Unprocessed"
	ShipStatusTentative   ShipStatus = "Tentative"
	ShipStatusConfirmed   ShipStatus = "Confirmed"
)

// ShipmentStatus is the derived fulfillment state of an installation.
// It is never stored directly; it is derived from the pair
// (has_shipped, partially_shipped).
type ShipmentStatus string

const (
	ShipmentStatusNone    ShipmentStatus = "None"
	ShipmentStatusPartial ShipmentStatus = "Partial"
	ShipmentStatusFull    ShipmentStatus = "Full"
)

// InvoiceDisplayStatus is derived from (paid_at, no_charge), never stored.
type InvoiceDisplayStatus string

const (
	InvoiceDisplayStatusPaid     InvoiceDisplayStatus = "Paid"
	InvoiceDisplayStatusNoCharge InvoiceDisplayStatus = "NoCharge"
	InvoiceDisplayStatusPending  InvoiceDisplayStatus = "Pending"
)

// UserRole gates which areas of the app a user can write to.
type UserRole string

const (
	UserRoleAdmin  UserRole = "A"
	UserRoleOffice UserRole = "O"
	UserRolePlant  UserRole = "P"
)

// MilestoneField names one nullable completion-timestamp column on
// production_schedules. The timestamp is the state: non-null means complete.
type MilestoneField string

const (
	MilestoneInPlant      MilestoneField = "inPlant"
	MilestoneDoors        MilestoneField = "doors"
	MilestoneCutFinish    MilestoneField = "cutFinish"
	MilestoneCustomFinish MilestoneField = "customFinish"
	MilestoneDrawer       MilestoneField = "drawer"
	MilestoneCutMelamine  MilestoneField = "cutMelamine"
	MilestonePaint        MilestoneField = "paint"
	MilestoneAssembly     MilestoneField = "assembly"
)

// InstallMilestoneField names a completion-timestamp column on installations.
type InstallMilestoneField string

const (
	InstallMilestoneInspection   InstallMilestoneField = "inspection"
	InstallMilestoneInstallation InstallMilestoneField = "installation"
)
