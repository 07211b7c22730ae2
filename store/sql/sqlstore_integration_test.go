package sqlstore_test

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"testing"
	"time"

	persistence "github.com/goliatone/go-persistence-bun"
	"github.com/google/uuid"
	"github.com/jobdeck/jobdeck/core"
	jobdeckmigrations "github.com/jobdeck/jobdeck/migrations"
	sqlstore "github.com/jobdeck/jobdeck/store/sql"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

var (
	ownerAlice = uuid.MustParse("11111111-1111-4111-8111-111111111111")
	ownerBob   = uuid.MustParse("22222222-2222-4222-8222-222222222222")
)

type testPersistenceConfig struct {
	driver string
	server string
}

func (c testPersistenceConfig) GetDebug() bool {
	return false
}

func (c testPersistenceConfig) GetDriver() string {
	return c.driver
}

func (c testPersistenceConfig) GetServer() string {
	return c.server
}

func (c testPersistenceConfig) GetPingTimeout() time.Duration {
	return time.Second
}

func (c testPersistenceConfig) GetOtelIdentifier() string {
	return "jobdeck-tests"
}

func newSQLiteClient(t *testing.T) (*persistence.Client, func()) {
	t.Helper()

	dsn := fmt.Sprintf(
		"file:jobdeck-test-%d?mode=memory&cache=shared&_foreign_keys=on",
		time.Now().UnixNano(),
	)
	sqlDB, err := sql.Open("sqlite3", dsn)
	if err != nil {
		t.Fatalf("open sqlite db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	cfg := testPersistenceConfig{
		driver: "sqlite3",
		server: dsn,
	}
	client, err := persistence.New(cfg, sqlDB, sqlitedialect.New())
	if err != nil {
		_ = sqlDB.Close()
		t.Fatalf("new persistence client: %v", err)
	}

	ctx := context.Background()
	err = jobdeckmigrations.Register(ctx, func(_ context.Context, _ string, fsys fs.FS) error {
		client.RegisterSQLMigrations(fsys)
		return nil
	}, jobdeckmigrations.DialectSQLite)
	if err != nil {
		_ = client.Close()
		t.Fatalf("register migrations: %v", err)
	}
	if err := client.Migrate(ctx); err != nil {
		_ = client.Close()
		t.Fatalf("migrate: %v", err)
	}

	return client, func() {
		_ = client.Close()
	}
}

func newFactory(t *testing.T) (*sqlstore.RepositoryFactory, func()) {
	t.Helper()
	client, cleanup := newSQLiteClient(t)
	factory, err := sqlstore.NewRepositoryFactoryFromPersistence(client)
	if err != nil {
		cleanup()
		t.Fatalf("new repository factory: %v", err)
	}
	return factory, cleanup
}

func newUow(t *testing.T, factory *sqlstore.RepositoryFactory, owner uuid.UUID) core.UnitOfWork {
	t.Helper()
	uow, err := factory.NewUnitOfWork(owner)
	if err != nil {
		t.Fatalf("new unit of work: %v", err)
	}
	return uow
}

func seedJob(t *testing.T, factory *sqlstore.RepositoryFactory, owner uuid.UUID, title string) core.Job {
	t.Helper()
	ctx := context.Background()
	uow := newUow(t, factory, owner)
	job := core.Job{
		Entity: core.Entity{OwnerID: owner},
		Title:  title,
		Type:   core.JobTypeFullTime,
	}
	if err := uow.Jobs().Add(&job); err != nil {
		t.Fatalf("stage job: %v", err)
	}
	if err := uow.Commit(ctx); err != nil {
		t.Fatalf("commit job: %v", err)
	}
	if job.ID <= 0 {
		t.Fatalf("expected assigned job id, got %d", job.ID)
	}
	return job
}

func seedApplication(t *testing.T, factory *sqlstore.RepositoryFactory, owner uuid.UUID, jobID int64) core.JobApplication {
	t.Helper()
	ctx := context.Background()
	uow := newUow(t, factory, owner)
	now := time.Now().UTC().Truncate(time.Second)
	app := core.JobApplication{
		Entity:          core.Entity{OwnerID: owner},
		JobID:           jobID,
		Status:          core.ApplicationStatusApplied,
		AppliedAt:       now,
		StatusUpdatedAt: now,
	}
	if err := uow.Applications().Add(&app); err != nil {
		t.Fatalf("stage application: %v", err)
	}
	if err := uow.Commit(ctx); err != nil {
		t.Fatalf("commit application: %v", err)
	}
	return app
}

func TestMigrationSmokeApplySQLite(t *testing.T) {
	client, cleanup := newSQLiteClient(t)
	defer cleanup()

	for _, tableName := range []string{"jobs", "job_applications", "application_notes", "preferences", "user_profiles"} {
		var found string
		if err := client.DB().NewRaw(
			"SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?",
			tableName,
		).Scan(context.Background(), &found); err != nil {
			t.Fatalf("query sqlite master for %s: %v", tableName, err)
		}
		if found != tableName {
			t.Fatalf("expected %s table, got %q", tableName, found)
		}
	}
}

func TestRepository_AddCommitRoundTrip(t *testing.T) {
	factory, cleanup := newFactory(t)
	defer cleanup()
	ctx := context.Background()

	uow := newUow(t, factory, ownerAlice)
	job := core.Job{
		Entity:            core.Entity{OwnerID: ownerAlice},
		Title:             "Backend Engineer",
		Company:           "Acme",
		Location:          "Berlin",
		Type:              core.JobTypeRemote,
		Description:       "Build the store layer",
		OffersSponsorship: true,
	}
	if err := uow.Jobs().Add(&job); err != nil {
		t.Fatalf("stage job: %v", err)
	}

	// Staged writes are invisible until Commit.
	reader := newUow(t, factory, ownerAlice)
	if jobs, err := reader.Jobs().GetAll(ctx); err != nil {
		t.Fatalf("list jobs before commit: %v", err)
	} else if len(jobs) != 0 {
		t.Fatalf("expected no visible jobs before commit, got %d", len(jobs))
	}

	if err := uow.Commit(ctx); err != nil {
		t.Fatalf("commit: %v", err)
	}
	if job.ID <= 0 {
		t.Fatalf("expected store-assigned id, got %d", job.ID)
	}
	if job.CreatedAt.IsZero() {
		t.Fatalf("expected created_at to be assigned")
	}

	loaded, found, err := newUow(t, factory, ownerAlice).Jobs().GetByID(ctx, job.ID)
	if err != nil {
		t.Fatalf("get job: %v", err)
	}
	if !found {
		t.Fatalf("expected job %d to exist", job.ID)
	}
	if loaded.Title != job.Title || loaded.Company != job.Company || loaded.Location != job.Location {
		t.Fatalf("unexpected job fields: %#v", loaded)
	}
	if loaded.Type != core.JobTypeRemote || !loaded.OffersSponsorship || loaded.OffersRelocation {
		t.Fatalf("unexpected job flags: %#v", loaded)
	}
}

func TestRepository_GetByIDAbsenceIsNotError(t *testing.T) {
	factory, cleanup := newFactory(t)
	defer cleanup()

	_, found, err := newUow(t, factory, ownerAlice).Jobs().GetByID(context.Background(), 999)
	if err != nil {
		t.Fatalf("expected no error for absent row, got %v", err)
	}
	if found {
		t.Fatalf("expected absence for unknown id")
	}
}

func TestRepository_AddRejectsPresetID(t *testing.T) {
	factory, cleanup := newFactory(t)
	defer cleanup()

	uow := newUow(t, factory, ownerAlice)
	job := core.Job{Entity: core.Entity{ID: 42, OwnerID: ownerAlice}, Title: "Engineer"}
	err := uow.Jobs().Add(&job)
	if !core.IsValidationError(err) {
		t.Fatalf("expected validation error for preset id, got %v", err)
	}
}

func TestRepository_UpdateRequiresPersistedEntity(t *testing.T) {
	factory, cleanup := newFactory(t)
	defer cleanup()

	uow := newUow(t, factory, ownerAlice)
	job := core.Job{Entity: core.Entity{OwnerID: ownerAlice}, Title: "Engineer"}
	err := uow.Jobs().Update(&job)
	if !core.IsValidationError(err) {
		t.Fatalf("expected validation error for zero id update, got %v", err)
	}
}

func TestRepository_UpdateCommitPersistsChanges(t *testing.T) {
	factory, cleanup := newFactory(t)
	defer cleanup()
	ctx := context.Background()

	job := seedJob(t, factory, ownerAlice, "Backend Engineer")

	uow := newUow(t, factory, ownerAlice)
	job.Title = "Staff Engineer"
	job.Type = core.JobTypeContract
	if err := uow.Jobs().Update(&job); err != nil {
		t.Fatalf("stage update: %v", err)
	}
	if err := uow.Commit(ctx); err != nil {
		t.Fatalf("commit update: %v", err)
	}

	loaded, found, err := newUow(t, factory, ownerAlice).Jobs().GetByID(ctx, job.ID)
	if err != nil || !found {
		t.Fatalf("reload job: found=%v err=%v", found, err)
	}
	if loaded.Title != "Staff Engineer" || loaded.Type != core.JobTypeContract {
		t.Fatalf("expected updated fields, got %#v", loaded)
	}
	if loaded.UpdatedAt == nil {
		t.Fatalf("expected updated_at to be stamped on update")
	}
}

func TestRepository_UpdateDoesNotRewriteCreatedAt(t *testing.T) {
	factory, cleanup := newFactory(t)
	defer cleanup()
	ctx := context.Background()

	job := seedJob(t, factory, ownerAlice, "Audit")
	seeded, found, err := newUow(t, factory, ownerAlice).Jobs().GetByID(ctx, job.ID)
	if err != nil || !found {
		t.Fatalf("reload seeded job: found=%v err=%v", found, err)
	}
	if seeded.CreatedAt.IsZero() {
		t.Fatalf("expected stored creation timestamp")
	}

	// A full-overwrite payload without the audit timestamp must not touch it.
	replacement := core.Job{
		Entity: core.Entity{ID: job.ID, OwnerID: ownerAlice},
		Title:  "Audit Renamed",
		Type:   core.JobTypeContract,
	}
	uow := newUow(t, factory, ownerAlice)
	if err := uow.Jobs().Update(&replacement); err != nil {
		t.Fatalf("stage update: %v", err)
	}
	if err := uow.Commit(ctx); err != nil {
		t.Fatalf("commit update: %v", err)
	}

	loaded, found, err := newUow(t, factory, ownerAlice).Jobs().GetByID(ctx, job.ID)
	if err != nil || !found {
		t.Fatalf("reload updated job: found=%v err=%v", found, err)
	}
	if loaded.Title != "Audit Renamed" {
		t.Fatalf("expected updated title, got %q", loaded.Title)
	}
	if !loaded.CreatedAt.Equal(seeded.CreatedAt) {
		t.Fatalf("created_at changed on update: was %v, now %v", seeded.CreatedAt, loaded.CreatedAt)
	}
	if loaded.UpdatedAt == nil {
		t.Fatalf("expected updated_at to be stamped")
	}
}

func TestRepository_FindCompilesPredicates(t *testing.T) {
	factory, cleanup := newFactory(t)
	defer cleanup()
	ctx := context.Background()

	uow := newUow(t, factory, ownerAlice)
	jobs := []*core.Job{
		{Entity: core.Entity{OwnerID: ownerAlice}, Title: "Remote One", Type: core.JobTypeRemote},
		{Entity: core.Entity{OwnerID: ownerAlice}, Title: "Remote Two", Type: core.JobTypeRemote, OffersRelocation: true},
		{Entity: core.Entity{OwnerID: ownerAlice}, Title: "Onsite", Type: core.JobTypeFullTime},
	}
	if err := uow.Jobs().AddRange(jobs...); err != nil {
		t.Fatalf("stage jobs: %v", err)
	}
	if err := uow.Commit(ctx); err != nil {
		t.Fatalf("commit jobs: %v", err)
	}

	reader := newUow(t, factory, ownerAlice).Jobs()

	remote, err := reader.Find(ctx, core.Where("job_type", core.OpEq, string(core.JobTypeRemote)))
	if err != nil {
		t.Fatalf("find remote jobs: %v", err)
	}
	if len(remote) != 2 {
		t.Fatalf("expected 2 remote jobs, got %d", len(remote))
	}

	combined, err := reader.Find(ctx, core.And(
		core.Where("job_type", core.OpEq, string(core.JobTypeRemote)),
		core.Where("offers_relocation", core.OpEq, true),
	))
	if err != nil {
		t.Fatalf("find relocating remote jobs: %v", err)
	}
	if len(combined) != 1 || combined[0].Title != "Remote Two" {
		t.Fatalf("unexpected and-predicate result: %#v", combined)
	}

	either, err := reader.Find(ctx, core.Or(
		core.Where("title", core.OpEq, "Onsite"),
		core.Where("title", core.OpEq, "Remote One"),
	))
	if err != nil {
		t.Fatalf("find or-predicate jobs: %v", err)
	}
	if len(either) != 2 {
		t.Fatalf("expected 2 jobs from or-predicate, got %d", len(either))
	}

	nested, err := reader.Find(ctx, core.Or(
		core.And(
			core.Where("job_type", core.OpEq, string(core.JobTypeRemote)),
			core.Where("offers_relocation", core.OpEq, true),
		),
		core.Where("title", core.OpEq, "Onsite"),
	))
	if err != nil {
		t.Fatalf("find nested or-predicate jobs: %v", err)
	}
	if len(nested) != 2 {
		t.Fatalf("expected 2 jobs from nested or-predicate, got %d", len(nested))
	}
	for _, job := range nested {
		if job.Title != "Remote Two" && job.Title != "Onsite" {
			t.Fatalf("unexpected nested or-predicate match: %q", job.Title)
		}
	}

	subset, err := reader.Find(ctx, core.Where("job_type", core.OpIn, []string{
		string(core.JobTypeRemote),
		string(core.JobTypeFullTime),
	}))
	if err != nil {
		t.Fatalf("find in-predicate jobs: %v", err)
	}
	if len(subset) != 3 {
		t.Fatalf("expected all 3 jobs from in-predicate, got %d", len(subset))
	}
}

func TestRepository_RemoveRangeEmptiesOwnerRows(t *testing.T) {
	factory, cleanup := newFactory(t)
	defer cleanup()
	ctx := context.Background()

	first := seedJob(t, factory, ownerAlice, "First")
	second := seedJob(t, factory, ownerAlice, "Second")

	uow := newUow(t, factory, ownerAlice)
	if err := uow.Jobs().RemoveRange(&first, &second); err != nil {
		t.Fatalf("stage removals: %v", err)
	}
	if err := uow.Commit(ctx); err != nil {
		t.Fatalf("commit removals: %v", err)
	}

	remaining, err := newUow(t, factory, ownerAlice).Jobs().GetAll(ctx)
	if err != nil {
		t.Fatalf("list jobs: %v", err)
	}
	if len(remaining) != 0 {
		t.Fatalf("expected no jobs after remove range, got %d", len(remaining))
	}
}

func TestUnitOfWork_CommitSemantics(t *testing.T) {
	factory, cleanup := newFactory(t)
	defer cleanup()
	ctx := context.Background()

	t.Run("empty commit is a no-op success", func(t *testing.T) {
		uow := newUow(t, factory, ownerAlice)
		if err := uow.Commit(ctx); err != nil {
			t.Fatalf("empty commit: %v", err)
		}
	})

	t.Run("second commit fails", func(t *testing.T) {
		uow := newUow(t, factory, ownerAlice)
		job := core.Job{Entity: core.Entity{OwnerID: ownerAlice}, Title: "Once"}
		if err := uow.Jobs().Add(&job); err != nil {
			t.Fatalf("stage job: %v", err)
		}
		if err := uow.Commit(ctx); err != nil {
			t.Fatalf("first commit: %v", err)
		}
		if err := uow.Commit(ctx); err == nil {
			t.Fatalf("expected error from second commit")
		}
	})

	t.Run("discard drops staged writes", func(t *testing.T) {
		uow := newUow(t, factory, ownerBob)
		job := core.Job{Entity: core.Entity{OwnerID: ownerBob}, Title: "Discarded"}
		if err := uow.Jobs().Add(&job); err != nil {
			t.Fatalf("stage job: %v", err)
		}
		uow.Discard()
		if err := uow.Commit(ctx); err != nil {
			t.Fatalf("commit after discard: %v", err)
		}
		jobs, err := newUow(t, factory, ownerBob).Jobs().GetAll(ctx)
		if err != nil {
			t.Fatalf("list jobs: %v", err)
		}
		if len(jobs) != 0 {
			t.Fatalf("expected discarded job to be absent, got %d rows", len(jobs))
		}
	})

	t.Run("failing staged op rolls back the batch", func(t *testing.T) {
		job := seedJob(t, factory, ownerBob, "Anchor")
		_ = seedApplication(t, factory, ownerBob, job.ID)

		uow := newUow(t, factory, ownerBob)
		now := time.Now().UTC()
		extra := core.Job{Entity: core.Entity{OwnerID: ownerBob}, Title: "Rolled Back"}
		dup := core.JobApplication{
			Entity:          core.Entity{OwnerID: ownerBob},
			JobID:           job.ID,
			Status:          core.ApplicationStatusApplied,
			AppliedAt:       now,
			StatusUpdatedAt: now,
		}
		if err := uow.Jobs().Add(&extra); err != nil {
			t.Fatalf("stage extra job: %v", err)
		}
		if err := uow.Applications().Add(&dup); err != nil {
			t.Fatalf("stage duplicate application: %v", err)
		}
		err := uow.Commit(ctx)
		if !core.IsConstraintViolation(err) {
			t.Fatalf("expected constraint violation, got %v", err)
		}

		jobs, listErr := newUow(t, factory, ownerBob).Jobs().Find(ctx, core.Where("title", core.OpEq, "Rolled Back"))
		if listErr != nil {
			t.Fatalf("list jobs: %v", listErr)
		}
		if len(jobs) != 0 {
			t.Fatalf("expected rolled back job to be absent, got %d rows", len(jobs))
		}
	})
}

func TestApplications_UniquePerJob(t *testing.T) {
	factory, cleanup := newFactory(t)
	defer cleanup()
	ctx := context.Background()

	job := seedJob(t, factory, ownerAlice, "Single Application")
	_ = seedApplication(t, factory, ownerAlice, job.ID)

	uow := newUow(t, factory, ownerAlice)
	now := time.Now().UTC()
	second := core.JobApplication{
		Entity:          core.Entity{OwnerID: ownerAlice},
		JobID:           job.ID,
		Status:          core.ApplicationStatusApplied,
		AppliedAt:       now,
		StatusUpdatedAt: now,
	}
	if err := uow.Applications().Add(&second); err != nil {
		t.Fatalf("stage second application: %v", err)
	}
	err := uow.Commit(ctx)
	if !core.IsConstraintViolation(err) {
		t.Fatalf("expected constraint violation for duplicate job application, got %v", err)
	}
}

func TestRemoveJob_CascadesApplicationAndNotes(t *testing.T) {
	factory, cleanup := newFactory(t)
	defer cleanup()
	ctx := context.Background()

	job := seedJob(t, factory, ownerAlice, "Cascade")
	app := seedApplication(t, factory, ownerAlice, job.ID)

	uow := newUow(t, factory, ownerAlice)
	note := core.ApplicationNote{
		Entity:           core.Entity{OwnerID: ownerAlice},
		JobApplicationID: app.ID,
		Body:             "phone screen scheduled",
	}
	if err := uow.Notes().Add(&note); err != nil {
		t.Fatalf("stage note: %v", err)
	}
	if err := uow.Commit(ctx); err != nil {
		t.Fatalf("commit note: %v", err)
	}

	remover := newUow(t, factory, ownerAlice)
	if err := remover.Jobs().Remove(&job); err != nil {
		t.Fatalf("stage job removal: %v", err)
	}
	if err := remover.Commit(ctx); err != nil {
		t.Fatalf("commit job removal: %v", err)
	}

	reader := newUow(t, factory, ownerAlice)
	if _, found, err := reader.Applications().GetByID(ctx, app.ID); err != nil || found {
		t.Fatalf("expected cascaded application removal: found=%v err=%v", found, err)
	}
	if _, found, err := reader.Notes().GetByID(ctx, note.ID); err != nil || found {
		t.Fatalf("expected cascaded note removal: found=%v err=%v", found, err)
	}
}

func TestJobRelationLoadsApplicationAndNotes(t *testing.T) {
	factory, cleanup := newFactory(t)
	defer cleanup()
	ctx := context.Background()

	job := seedJob(t, factory, ownerAlice, "With Application")
	app := seedApplication(t, factory, ownerAlice, job.ID)

	uow := newUow(t, factory, ownerAlice)
	note := core.ApplicationNote{
		Entity:           core.Entity{OwnerID: ownerAlice},
		JobApplicationID: app.ID,
		Body:             "recruiter replied",
	}
	if err := uow.Notes().Add(&note); err != nil {
		t.Fatalf("stage note: %v", err)
	}
	if err := uow.Commit(ctx); err != nil {
		t.Fatalf("commit note: %v", err)
	}

	loaded, found, err := newUow(t, factory, ownerAlice).Jobs().GetByID(ctx, job.ID)
	if err != nil || !found {
		t.Fatalf("reload job: found=%v err=%v", found, err)
	}
	if loaded.Application == nil {
		t.Fatalf("expected application relation to load")
	}
	if loaded.Application.ID != app.ID {
		t.Fatalf("expected application %d, got %d", app.ID, loaded.Application.ID)
	}

	reloadedApp, found, err := newUow(t, factory, ownerAlice).Applications().GetByID(ctx, app.ID)
	if err != nil || !found {
		t.Fatalf("reload application: found=%v err=%v", found, err)
	}
	if len(reloadedApp.Notes) != 1 || reloadedApp.Notes[0].Body != "recruiter replied" {
		t.Fatalf("expected note relation to load, got %#v", reloadedApp.Notes)
	}
}

func TestOwnerScoping_HidesForeignRows(t *testing.T) {
	factory, cleanup := newFactory(t)
	defer cleanup()
	ctx := context.Background()

	job := seedJob(t, factory, ownerAlice, "Alice Only")

	bobUow := newUow(t, factory, ownerBob)
	if _, found, err := bobUow.Jobs().GetByID(ctx, job.ID); err != nil || found {
		t.Fatalf("expected foreign row to read as absent: found=%v err=%v", found, err)
	}
	jobs, err := bobUow.Jobs().GetAll(ctx)
	if err != nil {
		t.Fatalf("list foreign jobs: %v", err)
	}
	if len(jobs) != 0 {
		t.Fatalf("expected no visible foreign jobs, got %d", len(jobs))
	}

	// Foreign updates target zero rows and surface as a vanished row.
	job.Title = "Hijacked"
	if err := bobUow.Jobs().Update(&job); err != nil {
		t.Fatalf("stage foreign update: %v", err)
	}
	if err := bobUow.Commit(ctx); err == nil {
		t.Fatalf("expected foreign update to fail")
	}

	loaded, found, err := newUow(t, factory, ownerAlice).Jobs().GetByID(ctx, job.ID)
	if err != nil || !found {
		t.Fatalf("reload owned job: found=%v err=%v", found, err)
	}
	if loaded.Title != "Alice Only" {
		t.Fatalf("expected foreign update to be rejected, got title %q", loaded.Title)
	}
}

func TestPreferences_UniquePerOwnerWithSalaryBounds(t *testing.T) {
	factory, cleanup := newFactory(t)
	defer cleanup()
	ctx := context.Background()

	salary, err := core.NewSalaryRange(50000, 90000)
	if err != nil {
		t.Fatalf("new salary range: %v", err)
	}

	uow := newUow(t, factory, ownerAlice)
	prefs := core.Preferences{
		Entity:           core.Entity{OwnerID: ownerAlice},
		Salary:           salary,
		DesiredJobType:   core.JobTypeRemote,
		NeedsSponsorship: true,
	}
	if err := uow.Preferences().Add(&prefs); err != nil {
		t.Fatalf("stage preferences: %v", err)
	}
	if err := uow.Commit(ctx); err != nil {
		t.Fatalf("commit preferences: %v", err)
	}

	loadedList, err := newUow(t, factory, ownerAlice).Preferences().GetAll(ctx)
	if err != nil {
		t.Fatalf("load preferences: %v", err)
	}
	if len(loadedList) != 1 {
		t.Fatalf("expected one preferences row, got %d", len(loadedList))
	}
	loaded := loadedList[0]
	if loaded.Salary.Min() != 50000 || loaded.Salary.Max() != 90000 {
		t.Fatalf("unexpected salary range: %#v", loaded.Salary)
	}
	if loaded.DesiredJobType != core.JobTypeRemote || !loaded.NeedsSponsorship {
		t.Fatalf("unexpected preferences fields: %#v", loaded)
	}

	dupUow := newUow(t, factory, ownerAlice)
	dup := core.Preferences{
		Entity:         core.Entity{OwnerID: ownerAlice},
		Salary:         salary,
		DesiredJobType: core.JobTypeNone,
	}
	if err := dupUow.Preferences().Add(&dup); err != nil {
		t.Fatalf("stage duplicate preferences: %v", err)
	}
	err = dupUow.Commit(ctx)
	if !core.IsConstraintViolation(err) {
		t.Fatalf("expected constraint violation for second preferences row, got %v", err)
	}
}

func TestProfileStore_UpsertAndGet(t *testing.T) {
	factory, cleanup := newFactory(t)
	defer cleanup()
	ctx := context.Background()

	store := factory.Profiles()
	if store == nil {
		t.Fatalf("expected profile store from factory")
	}

	profile := core.UserProfile{
		ID:        ownerAlice,
		Email:     "alice@example.com",
		FullName:  "Alice",
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}

	saved, err := store.Upsert(ctx, profile)
	if err != nil {
		t.Fatalf("upsert profile: %v", err)
	}
	if saved.Email != "alice@example.com" {
		t.Fatalf("unexpected saved profile: %#v", saved)
	}

	loaded, found, err := store.Get(ctx, ownerAlice)
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if !found {
		t.Fatalf("expected stored profile")
	}
	if loaded.Email != "alice@example.com" || loaded.FullName != "Alice" {
		t.Fatalf("unexpected loaded profile: %#v", loaded)
	}

	profile.FullName = "Alice A."
	if _, err := store.Upsert(ctx, profile); err != nil {
		t.Fatalf("upsert updated profile: %v", err)
	}
	reloaded, found, err := store.Get(ctx, ownerAlice)
	if err != nil || !found {
		t.Fatalf("reload profile: found=%v err=%v", found, err)
	}
	if reloaded.FullName != "Alice A." {
		t.Fatalf("expected updated full name, got %q", reloaded.FullName)
	}

	if _, found, err := store.Get(ctx, ownerBob); err != nil || found {
		t.Fatalf("expected absence for unknown profile: found=%v err=%v", found, err)
	}
}
