package models_test

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/margh00b/woodtrack_backend/config"
	"github.com/margh00b/woodtrack_backend/models"
	"github.com/margh00b/woodtrack_backend/workflow"
)

// End-to-end lifecycle against real MySQL + Redis in docker: sold job,
// milestone toggles, full shipment cascade, list projection.
func TestJobLifecycle_FullShipmentCascade(t *testing.T) {
	if strings.TrimSpace(os.Getenv("INTEGRATION_TESTS")) == "" {
		t.Skip("set INTEGRATION_TESTS=1 to run integration tests (requires docker)")
	}

	ctx := context.Background()

	redisName, redisPort := startRedisContainer(t)
	t.Cleanup(func() { _ = dockerRmForce(redisName) })

	mysqlName, mysqlPort := startMySQLContainer(t)
	t.Cleanup(func() { _ = dockerRmForce(mysqlName) })

	t.Setenv("REDIS_ADDRESS", fmt.Sprintf("127.0.0.1:%s", redisPort))
	t.Setenv("DB_USER", "root")
	t.Setenv("DB_PASSWORD", "testpw")
	t.Setenv("DB_HOST", "127.0.0.1")
	t.Setenv("DB_PORT", mysqlPort)
	t.Setenv("DB_NAME", "woodtrack_test")

	config.ConnectDatabaseWithRetry()
	config.ConnectRedisWithRetry()
	if err := config.ClearRedis(config.GetRedisContext()); err != nil {
		t.Fatalf("flush redis: %v", err)
	}
	models.MigrateTable()

	db := config.GetDB()

	client := models.Client{CompanyName: "North Shore Cabinets"}
	if err := db.WithContext(ctx).Create(&client).Error; err != nil {
		t.Fatalf("create client: %v", err)
	}

	// first read fills the redis item cache, second read serves from it
	for i := 0; i < 2; i++ {
		got, err := models.GetClient(ctx, client.ID)
		if err != nil {
			t.Fatalf("GetClient read %d: %v", i+1, err)
		}
		if got.CompanyName != "North Shore Cabinets" {
			t.Fatalf("GetClient read %d: %+v", i+1, got)
		}
	}

	job, err := models.CreateJob(ctx, &models.NewJob{
		JobNumber: "26-1001",
		ClientId:  client.ID,
		SoldAt:    time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("CreateJob: %v", err)
	}
	if job.Schedule == nil || job.Installation == nil {
		t.Fatal("CreateJob must create the schedule and installation rows")
	}

	// toggle one milestone by hand, then verify idempotency of re-toggling
	schedule, err := models.ToggleScheduleMilestone(ctx, job.Schedule.ID, models.MilestoneInPlant, true)
	if err != nil {
		t.Fatalf("ToggleScheduleMilestone: %v", err)
	}
	schedule, err = models.GetScheduleByJobId(ctx, job.ID)
	if err != nil || schedule.InPlantActual == nil {
		t.Fatalf("milestone not stamped: %v %v", schedule, err)
	}
	firstStamp := *schedule.InPlantActual

	if _, err := models.ToggleScheduleMilestone(ctx, schedule.ID, models.MilestoneInPlant, true); err != nil {
		t.Fatalf("re-toggle: %v", err)
	}
	schedule, _ = models.GetScheduleByJobId(ctx, job.ID)
	if !schedule.InPlantActual.Equal(firstStamp) {
		t.Fatalf("re-completing must keep the original stamp: %v vs %v", schedule.InPlantActual, firstStamp)
	}

	// full shipment backfills every open milestone and flips the flags
	result, err := workflow.ApplyShipmentStatus(ctx, job.ID, models.ShipmentStatusFull)
	if err != nil {
		t.Fatalf("ApplyShipmentStatus: %v", err)
	}
	if result.Status != models.ShipmentStatusFull {
		t.Fatalf("status = %q, want Full", result.Status)
	}
	if result.BackorderRequired {
		t.Fatal("full shipment must not demand a backorder")
	}

	schedule, _ = models.GetScheduleByJobId(ctx, job.ID)
	for field := range map[models.MilestoneField]bool{
		models.MilestoneDoors: true, models.MilestonePaint: true, models.MilestoneAssembly: true,
	} {
		if schedule.MilestoneActual(field) == nil {
			t.Fatalf("milestone %q not backfilled by full shipment", field)
		}
	}
	if !schedule.InPlantActual.Equal(firstStamp) {
		t.Fatal("hand-stamped milestone must keep its earlier timestamp")
	}

	installation, _ := models.GetInstallationByJobId(ctx, job.ID)
	if installation.ShipmentStatus() != models.ShipmentStatusFull {
		t.Fatalf("installation status = %q", installation.ShipmentStatus())
	}
	if installation.WrapCompleted == nil {
		t.Fatal("full shipment must stamp wrap_completed")
	}

	// the plant shipping projection must reflect the new state
	q, err := models.CompileListQuery(models.ResourcePlantShipping,
		[]models.Condition{models.TextMatch{Field: "jobNumber", Value: "26-1001"}},
		nil, models.PageWindow{})
	if err != nil {
		t.Fatalf("CompileListQuery: %v", err)
	}
	rows, total, err := models.FetchWindow[models.PlantShippingRow](ctx, q)
	if err != nil {
		t.Fatalf("FetchWindow: %v", err)
	}
	if total != 1 || len(rows) != 1 {
		t.Fatalf("expected one projection row, got %d/%d", len(rows), total)
	}
	if !rows[0].HasShipped || !rows[0].Wrapped {
		t.Fatalf("projection row stale: %+v", rows[0])
	}

	// a page index past the end answers with zero rows and the true count
	qPast, err := models.CompileListQuery(models.ResourcePlantShipping,
		[]models.Condition{models.TextMatch{Field: "jobNumber", Value: "26-1001"}},
		nil, models.PageWindow{Index: 5, Size: 10})
	if err != nil {
		t.Fatalf("CompileListQuery past-the-end: %v", err)
	}
	pastRows, pastTotal, err := models.FetchWindow[models.PlantShippingRow](ctx, qPast)
	if err != nil {
		t.Fatalf("FetchWindow past-the-end: %v", err)
	}
	if pastTotal != 1 || len(pastRows) != 0 {
		t.Fatalf("past-the-end page: got %d rows, total %d; want 0 rows, total 1", len(pastRows), pastTotal)
	}

	// partial shipment on a second job flags the backorder requirement
	job2, err := models.CreateJob(ctx, &models.NewJob{
		JobNumber: "26-1002",
		ClientId:  client.ID,
		SoldAt:    time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("CreateJob 2: %v", err)
	}
	partial, err := workflow.ApplyShipmentStatus(ctx, job2.ID, models.ShipmentStatusPartial)
	if err != nil {
		t.Fatalf("ApplyShipmentStatus partial: %v", err)
	}
	if partial.Status != models.ShipmentStatusPartial || !partial.BackorderRequired {
		t.Fatalf("partial result wrong: %+v", partial)
	}

	// a partial shipment only writes installation flags; no production
	// milestone may be stamped
	schedule2Partial, err := models.GetScheduleByJobId(ctx, job2.ID)
	if err != nil {
		t.Fatalf("GetScheduleByJobId after partial: %v", err)
	}
	for _, field := range []models.MilestoneField{
		models.MilestoneInPlant, models.MilestoneDoors, models.MilestoneCutFinish,
		models.MilestoneCustomFinish, models.MilestoneDrawer, models.MilestoneCutMelamine,
		models.MilestonePaint, models.MilestoneAssembly,
	} {
		if schedule2Partial.MilestoneActual(field) != nil {
			t.Fatalf("partial shipment stamped milestone %q", field)
		}
	}

	// bulk patch: set doors date on both jobs, clear nothing
	report, err := workflow.ApplyBulkScheduleUpdate(ctx, []int{job.ID, job2.ID, 999999}, mustPatch(t, `{
		"doors_date": "2026-07-01T00:00:00Z",
		"ship_status": "Confirmed"
	}`))
	if err != nil {
		t.Fatalf("ApplyBulkScheduleUpdate: %v", err)
	}
	if report.Success != 2 || report.Failed != 1 {
		t.Fatalf("bulk report wrong: %+v", report)
	}
	schedule2, _ := models.GetScheduleByJobId(ctx, job2.ID)
	if schedule2.ShipStatus != models.ShipStatusConfirmed || schedule2.DoorsDate == nil {
		t.Fatalf("bulk patch not applied: %+v", schedule2)
	}
}

func mustPatch(t *testing.T, body string) *workflow.SchedulePatch {
	t.Helper()
	var patch workflow.SchedulePatch
	if err := json.Unmarshal([]byte(body), &patch); err != nil {
		t.Fatal(err)
	}
	return &patch
}

func startRedisContainer(t *testing.T) (containerName, hostPort string) {
	t.Helper()
	name := fmt.Sprintf("woodtrack-test-redis-%d", time.Now().UnixNano())
	out, err := dockerRun(
		"run", "-d", "--name", name,
		"-p", "127.0.0.1:0:6379",
		"redis:7-alpine",
	)
	if err != nil {
		t.Fatalf("start redis container: %v\n%s", err, out)
	}
	port, err := dockerHostPort(name, "6379/tcp")
	if err != nil {
		t.Fatalf("redis docker port: %v", err)
	}
	deadline := time.Now().Add(60 * time.Second)
	for time.Now().Before(deadline) {
		if _, err := dockerRun("exec", name, "redis-cli", "ping"); err == nil {
			return name, port
		}
		time.Sleep(250 * time.Millisecond)
	}
	t.Fatalf("redis did not become ready")
	return "", ""
}

func startMySQLContainer(t *testing.T) (containerName, hostPort string) {
	t.Helper()
	name := fmt.Sprintf("woodtrack-test-mysql-%d", time.Now().UnixNano())
	out, err := dockerRun(
		"run", "-d", "--name", name,
		"-e", "MYSQL_ROOT_PASSWORD=testpw",
		"-e", "MYSQL_DATABASE=woodtrack_test",
		"-p", "127.0.0.1:0:3306",
		"mysql:8.0",
		"--default-authentication-plugin=mysql_native_password",
	)
	if err != nil {
		t.Fatalf("start mysql container: %v\n%s", err, out)
	}
	port, err := dockerHostPort(name, "3306/tcp")
	if err != nil {
		t.Fatalf("mysql docker port: %v", err)
	}
	deadline := time.Now().Add(120 * time.Second)
	for time.Now().Before(deadline) {
		if _, err := dockerRun("exec", name, "mysqladmin", "ping", "-h", "127.0.0.1", "-ptestpw", "--silent"); err == nil {
			return name, port
		}
		time.Sleep(500 * time.Millisecond)
	}
	t.Fatalf("mysql did not become ready")
	return "", ""
}

func dockerHostPort(container, portProto string) (string, error) {
	out, err := dockerRun("port", container, portProto)
	if err != nil {
		return "", fmt.Errorf("docker port: %w: %s", err, out)
	}
	re := regexp.MustCompile(`:(\d+)`)
	m := re.FindStringSubmatch(out)
	if len(m) != 2 {
		return "", fmt.Errorf("unexpected docker port output: %q", out)
	}
	return m[1], nil
}

func dockerRmForce(container string) error {
	if strings.TrimSpace(container) == "" {
		return nil
	}
	_, err := dockerRun("rm", "-f", container)
	return err
}

func dockerRun(args ...string) (string, error) {
	cmd := exec.Command("docker", args...)
	b, err := cmd.CombinedOutput()
	return string(b), err
}
