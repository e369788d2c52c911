package models

import (
	"strings"
	"testing"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// newDryRunDB opens a gorm handle that never touches a server: the dialector
// skips the version handshake and DryRun stops before execution, so these
// tests assert the generated SQL offline.
func newDryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(mysql.New(mysql.Config{
		DSN:                       "test:test@tcp(127.0.0.1:3306)/woodtrack_test?parseTime=true",
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
	})
	if err != nil {
		t.Fatalf("open dry-run db: %v", err)
	}
	return db
}

func compileSQL(t *testing.T, q *ListQuery) (string, []any) {
	t.Helper()
	db := newDryRunDB(t)
	var rows []map[string]any
	tx := q.buildWindow(db.Table(q.resource.Table)).Find(&rows)
	if tx.Error != nil {
		t.Fatalf("build query: %v", tx.Error)
	}
	return tx.Statement.SQL.String(), tx.Statement.Vars
}

func TestCompileListQuery_UnknownResource(t *testing.T) {
	_, err := CompileListQuery("nope", nil, nil, PageWindow{})
	if err == nil {
		t.Fatal("expected error for unknown resource")
	}
}

func TestCompileListQuery_UnknownField(t *testing.T) {
	_, err := CompileListQuery(ResourcePlantMaster,
		[]Condition{TextMatch{Field: "favoriteColor", Value: "blue"}}, nil, PageWindow{})
	if err == nil || !strings.Contains(err.Error(), "unknown filter field") {
		t.Fatalf("expected unknown-field error, got %v", err)
	}
}

func TestCompileListQuery_KindMismatch(t *testing.T) {
	// shipDate is a date-range field; a text match against it must fail at
	// compile time, not turn into a LIKE on a date column.
	_, err := CompileListQuery(ResourcePlantMaster,
		[]Condition{TextMatch{Field: "shipDate", Value: "2024"}}, nil, PageWindow{})
	if err == nil {
		t.Fatal("expected kind-mismatch error")
	}
}

func TestCompileListQuery_NotSortable(t *testing.T) {
	_, err := CompileListQuery(ResourcePlantMaster, nil,
		&SortSpec{Field: "rush", Direction: SortAsc}, PageWindow{})
	if err == nil || !strings.Contains(err.Error(), "not sortable") {
		t.Fatalf("expected not-sortable error, got %v", err)
	}
}

func TestCompileListQuery_InvalidDirection(t *testing.T) {
	_, err := CompileListQuery(ResourcePlantMaster, nil,
		&SortSpec{Field: "shipDate", Direction: "SIDEWAYS"}, PageWindow{})
	if err == nil {
		t.Fatal("expected invalid-direction error")
	}
}

func TestCompileListQuery_ClampsPageSize(t *testing.T) {
	q, err := CompileListQuery(ResourcePlantMaster, nil, nil, PageWindow{Index: -3, Size: 5000})
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if q.PageSize() != MaxPageSize {
		t.Fatalf("expected page size clamped to %d, got %d", MaxPageSize, q.PageSize())
	}
	if q.page.Index != 0 {
		t.Fatalf("expected negative page index clamped to 0, got %d", q.page.Index)
	}
}

func TestCompileListQuery_DefaultPageSize(t *testing.T) {
	q, err := CompileListQuery(ResourcePlantMaster, nil, nil, PageWindow{})
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if q.PageSize() != DefaultPageSize {
		t.Fatalf("expected default page size %d, got %d", DefaultPageSize, q.PageSize())
	}
}

func TestListQuery_PastTheEndPageStillWindows(t *testing.T) {
	// A page index far past any plausible row count compiles to a plain
	// LIMIT/OFFSET window; the database answers it with zero rows while the
	// count query still reports the true total.
	q, err := CompileListQuery(ResourcePlantMaster, nil, nil, PageWindow{Index: 7, Size: 25})
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	sql, vars := compileSQL(t, q)
	if !strings.Contains(sql, "LIMIT") || !strings.Contains(sql, "OFFSET") {
		t.Fatalf("expected a LIMIT/OFFSET window, got: %s", sql)
	}
	foundLimit, foundOffset := false, false
	for _, v := range vars {
		if v == 25 {
			foundLimit = true
		}
		if v == 175 {
			foundOffset = true
		}
	}
	if !foundLimit && !strings.Contains(sql, "25") {
		t.Fatalf("expected limit 25 in query, got %s %v", sql, vars)
	}
	if !foundOffset && !strings.Contains(sql, "175") {
		t.Fatalf("expected offset 175 in query, got %s %v", sql, vars)
	}
}

func TestListQuery_EmptyTextFilterDropped(t *testing.T) {
	q, err := CompileListQuery(ResourcePlantMaster,
		[]Condition{TextMatch{Field: "jobNumber", Value: ""}}, nil, PageWindow{})
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	sql, _ := compileSQL(t, q)
	if strings.Contains(sql, "job_number LIKE") {
		t.Fatalf("empty text filter must not produce a predicate, got: %s", sql)
	}
}

func TestListQuery_TextFilterLike(t *testing.T) {
	q, err := CompileListQuery(ResourcePlantMaster,
		[]Condition{TextMatch{Field: "jobNumber", Value: "24-10"}}, nil, PageWindow{})
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	sql, vars := compileSQL(t, q)
	if !strings.Contains(sql, "job_number LIKE ?") {
		t.Fatalf("expected LIKE predicate, got: %s", sql)
	}
	found := false
	for _, v := range vars {
		if v == "%24-10%" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected %%-wrapped pattern in vars, got %v", vars)
	}
}

func TestListQuery_MultiColumnTextFilter(t *testing.T) {
	q, err := CompileListQuery(ResourceInspection,
		[]Condition{TextMatch{Field: "installer", Value: "north"}}, nil, PageWindow{})
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	sql, _ := compileSQL(t, q)
	for _, column := range []string{"installer_company LIKE ?", "installer_first_name LIKE ?", "installer_last_name LIKE ?"} {
		if !strings.Contains(sql, column) {
			t.Fatalf("expected %q in SQL, got: %s", column, sql)
		}
	}
	if !strings.Contains(sql, " OR ") {
		t.Fatalf("multi-column match must OR its columns, got: %s", sql)
	}
}

func TestListQuery_DateRangeBounds(t *testing.T) {
	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		cond DateRange
		want string
		no   string
	}{
		{"both", DateRange{Field: "shipDate", From: &from, To: &to}, "ship_date BETWEEN ? AND ?", ""},
		{"fromOnly", DateRange{Field: "shipDate", From: &from}, "ship_date >= ?", "BETWEEN"},
		{"toOnly", DateRange{Field: "shipDate", To: &to}, "ship_date <= ?", "BETWEEN"},
		{"neither", DateRange{Field: "shipDate"}, "", "ship_date"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			q, err := CompileListQuery(ResourcePlantMaster, []Condition{tc.cond}, nil, PageWindow{})
			if err != nil {
				t.Fatalf("compile: %v", err)
			}
			sql, _ := compileSQL(t, q)
			if tc.want != "" && !strings.Contains(sql, tc.want) {
				t.Fatalf("expected %q in SQL, got: %s", tc.want, sql)
			}
			if tc.no != "" && strings.Contains(sql, tc.no) {
				t.Fatalf("did not expect %q in SQL, got: %s", tc.no, sql)
			}
		})
	}
}

func TestListQuery_SortAndStableKey(t *testing.T) {
	q, err := CompileListQuery(ResourcePlantMaster, nil,
		&SortSpec{Field: "clientName", Direction: SortDesc}, PageWindow{})
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	sql, _ := compileSQL(t, q)
	if !strings.Contains(sql, "client_name DESC") {
		t.Fatalf("expected requested sort, got: %s", sql)
	}
	if !strings.Contains(sql, "source_id DESC") {
		t.Fatalf("expected stable secondary key, got: %s", sql)
	}
}

func TestListQuery_DefaultSortApplied(t *testing.T) {
	q, err := CompileListQuery(ResourcePlantMaster, nil, nil, PageWindow{})
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	sql, _ := compileSQL(t, q)
	if !strings.Contains(sql, "ship_date ASC") {
		t.Fatalf("expected default sort, got: %s", sql)
	}
}

func TestListQuery_JoinedResourceForcesInnerJoin(t *testing.T) {
	// a jobNumber filter on backorders must upgrade the jobs join to inner:
	// a matching row without a job row would be meaningless
	q, err := CompileListQuery(ResourceBackorders,
		[]Condition{TextMatch{Field: "jobNumber", Value: "24-"}}, nil, PageWindow{})
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	sql, _ := compileSQL(t, q)
	if !strings.Contains(sql, "JOIN jobs ON jobs.id = backorders.job_id") {
		t.Fatalf("expected jobs join, got: %s", sql)
	}
	if strings.Contains(sql, "LEFT JOIN jobs") {
		t.Fatalf("expected inner join, got left: %s", sql)
	}
	if !strings.Contains(sql, "backorders.*") {
		t.Fatalf("joined resource must project only its own columns, got: %s", sql)
	}
}

func TestListQuery_NoFilterNoJoin(t *testing.T) {
	q, err := CompileListQuery(ResourceBackorders, nil, nil, PageWindow{})
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	sql, _ := compileSQL(t, q)
	if strings.Contains(sql, "JOIN jobs") {
		t.Fatalf("join must only appear when a filter needs it, got: %s", sql)
	}
}

func TestTotalPages(t *testing.T) {
	cases := []struct {
		rows int64
		size int
		want int
	}{
		{0, 20, 0},
		{1, 20, 1},
		{20, 20, 1},
		{21, 20, 2},
		{199, 100, 2},
		{-5, 20, 0},
		{10, 0, 0},
	}
	for _, tc := range cases {
		if got := TotalPages(tc.rows, tc.size); got != tc.want {
			t.Errorf("TotalPages(%d, %d) = %d, want %d", tc.rows, tc.size, got, tc.want)
		}
	}
}
