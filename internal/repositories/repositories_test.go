package repository

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"skill-market.com/skill-market/pkg/constants"
	model "skill-market.com/skill-market/pkg/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}

	if err := Migrate(db); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	return db
}

func newTask(userID string) *model.Task {
	return &model.Task{
		Name:              "Fix the fence",
		Category:          "garden",
		Description:       "Replace three broken fence panels",
		ExpectedStartDate: datatypes.Date(time.Date(2026, 11, 2, 0, 0, 0, 0, time.UTC)),
		ExpectedHours:     6,
		HourlyRate:        decimal.RequireFromString("45.50"),
		Currency:          constants.CurrencyAUD,
		UserID:            userID,
	}
}

func TestTaskRepository_CreateAndFind(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTaskRepository(db)
	ctx := context.Background()

	task := newTask("user-1")
	if err := repo.Create(ctx, task); err != nil {
		t.Fatalf("failed to create task: %v", err)
	}

	if task.ID == "" || task.Status != constants.TaskStatusOpen || task.Version != 1 {
		t.Fatalf("unexpected defaults: id=%q status=%s version=%d", task.ID, task.Status, task.Version)
	}

	found, err := repo.FindByID(ctx, task.ID)
	if err != nil {
		t.Fatalf("failed to find task: %v", err)
	}

	if !found.HourlyRate.Equal(task.HourlyRate) {
		t.Errorf("expected rate %s, got %s", task.HourlyRate, found.HourlyRate)
	}

	if _, err := repo.FindByID(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestTaskRepository_UpdateVersionCheck(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTaskRepository(db)
	ctx := context.Background()

	task := newTask("user-1")
	if err := repo.Create(ctx, task); err != nil {
		t.Fatalf("failed to create task: %v", err)
	}

	stale := *task

	task.Name = "Fix the gate"
	if err := repo.Update(ctx, task); err != nil {
		t.Fatalf("failed to update task: %v", err)
	}

	if task.Version != 2 {
		t.Errorf("expected version 2, got %d", task.Version)
	}

	stale.Name = "Paint the shed"
	if err := repo.Update(ctx, &stale); !errors.Is(err, ErrOptimisticLock) {
		t.Errorf("expected ErrOptimisticLock, got %v", err)
	}

	found, _ := repo.FindByID(ctx, task.ID)
	if found.Name != "Fix the gate" {
		t.Errorf("expected stale write to be discarded, got name %q", found.Name)
	}
}

func TestTaskRepository_ListFilters(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTaskRepository(db)
	ctx := context.Background()

	for _, owner := range []string{"user-1", "user-1", "user-2"} {
		if err := repo.Create(ctx, newTask(owner)); err != nil {
			t.Fatalf("failed to create task: %v", err)
		}
	}

	all, err := repo.List(ctx)
	if err != nil || len(all) != 3 {
		t.Fatalf("expected 3 tasks, got %d (%v)", len(all), err)
	}

	mine, err := repo.ListByUser(ctx, "user-1")
	if err != nil || len(mine) != 2 {
		t.Fatalf("expected 2 tasks for user-1, got %d (%v)", len(mine), err)
	}

	assigned, err := repo.ListByProvider(ctx, "provider-1")
	if err != nil || len(assigned) != 0 {
		t.Fatalf("expected no tasks for provider-1, got %d (%v)", len(assigned), err)
	}
}

func TestTaskRepository_AppendProgress(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTaskRepository(db)
	ctx := context.Background()

	task := newTask("user-1")
	if err := repo.Create(ctx, task); err != nil {
		t.Fatalf("failed to create task: %v", err)
	}

	entry := &model.TaskProgress{
		ProviderID:  "provider-1",
		Description: "Removed the old panels",
		HoursSpent:  decimal.NewFromInt(2),
	}

	if err := repo.AppendProgress(ctx, task, entry); err != nil {
		t.Fatalf("failed to append progress: %v", err)
	}

	found, _ := repo.FindByID(ctx, task.ID)
	if found.Status != constants.TaskStatusInProgress {
		t.Errorf("expected status %s, got %s", constants.TaskStatusInProgress, found.Status)
	}

	entries, err := repo.ListProgress(ctx, task.ID)
	if err != nil || len(entries) != 1 {
		t.Fatalf("expected 1 progress entry, got %d (%v)", len(entries), err)
	}

	if entries[0].Status != constants.ProgressStatusInProgress {
		t.Errorf("expected progress status %s, got %s", constants.ProgressStatusInProgress, entries[0].Status)
	}
}

func TestTaskRepository_AppendProgressRollsBackOnConflict(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTaskRepository(db)
	ctx := context.Background()

	task := newTask("user-1")
	if err := repo.Create(ctx, task); err != nil {
		t.Fatalf("failed to create task: %v", err)
	}

	stale := *task
	if err := repo.Update(ctx, task); err != nil {
		t.Fatalf("failed to update task: %v", err)
	}

	entry := &model.TaskProgress{
		ProviderID:  "provider-1",
		Description: "Removed the old panels",
		HoursSpent:  decimal.NewFromInt(1),
	}

	if err := repo.AppendProgress(ctx, &stale, entry); !errors.Is(err, ErrOptimisticLock) {
		t.Fatalf("expected ErrOptimisticLock, got %v", err)
	}

	entries, _ := repo.ListProgress(ctx, task.ID)
	if len(entries) != 0 {
		t.Errorf("expected no progress entries after rollback, got %d", len(entries))
	}
}

func TestTaskRepository_DeleteRemovesOffers(t *testing.T) {
	db := setupTestDB(t)
	tasks := NewTaskRepository(db)
	offers := NewOfferRepository(db)
	ctx := context.Background()

	task := newTask("user-1")
	if err := tasks.Create(ctx, task); err != nil {
		t.Fatalf("failed to create task: %v", err)
	}

	offer := &model.Offer{TaskID: task.ID, ProviderID: "provider-1", HourlyRate: decimal.NewFromInt(40), Currency: constants.CurrencyAUD}
	if err := offers.Create(ctx, offer); err != nil {
		t.Fatalf("failed to create offer: %v", err)
	}

	if err := tasks.Delete(ctx, task); err != nil {
		t.Fatalf("failed to delete task: %v", err)
	}

	if _, err := tasks.FindByID(ctx, task.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected task to be gone, got %v", err)
	}

	if _, err := offers.FindByID(ctx, offer.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected offer to be gone, got %v", err)
	}
}

func TestOfferRepository_PendingAndAccepted(t *testing.T) {
	db := setupTestDB(t)
	tasks := NewTaskRepository(db)
	offers := NewOfferRepository(db)
	ctx := context.Background()

	task := newTask("user-1")
	if err := tasks.Create(ctx, task); err != nil {
		t.Fatalf("failed to create task: %v", err)
	}

	first := &model.Offer{TaskID: task.ID, ProviderID: "provider-1", HourlyRate: decimal.NewFromInt(40), Currency: constants.CurrencyAUD}
	second := &model.Offer{TaskID: task.ID, ProviderID: "provider-2", HourlyRate: decimal.NewFromInt(42), Currency: constants.CurrencyAUD}
	for _, o := range []*model.Offer{first, second} {
		if err := offers.Create(ctx, o); err != nil {
			t.Fatalf("failed to create offer: %v", err)
		}
	}

	pending, err := offers.FindPendingByTask(ctx, task.ID)
	if err != nil || len(pending) != 2 {
		t.Fatalf("expected 2 pending offers, got %d (%v)", len(pending), err)
	}

	if _, err := offers.FindAcceptedByTask(ctx, task.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected no accepted offer, got %v", err)
	}

	if err := offers.Accept(ctx, first, task); err != nil {
		t.Fatalf("failed to accept offer: %v", err)
	}

	accepted, err := offers.FindAcceptedByTask(ctx, task.ID)
	if err != nil || accepted.ID != first.ID {
		t.Fatalf("expected accepted offer %s, got %v (%v)", first.ID, accepted, err)
	}

	found, _ := tasks.FindByID(ctx, task.ID)
	if found.Status != constants.TaskStatusInProgress || !found.AssignedTo("provider-1") {
		t.Errorf("expected task in progress for provider-1, got %s %v", found.Status, found.ProviderID)
	}

	fresh, _ := tasks.FindByID(ctx, task.ID)
	if err := offers.Accept(ctx, second, fresh); !errors.Is(err, ErrOfferNotPending) {
		t.Errorf("expected ErrOfferNotPending for second accept, got %v", err)
	}

	reloaded, _ := offers.FindByID(ctx, second.ID)
	if reloaded.Status != constants.OfferStatusPending {
		t.Errorf("expected second offer to stay pending, got %s", reloaded.Status)
	}
}

func TestOfferRepository_AcceptRollsBackOnStaleTask(t *testing.T) {
	db := setupTestDB(t)
	tasks := NewTaskRepository(db)
	offers := NewOfferRepository(db)
	ctx := context.Background()

	task := newTask("user-1")
	if err := tasks.Create(ctx, task); err != nil {
		t.Fatalf("failed to create task: %v", err)
	}

	offer := &model.Offer{TaskID: task.ID, ProviderID: "provider-1", HourlyRate: decimal.NewFromInt(40), Currency: constants.CurrencyAUD}
	if err := offers.Create(ctx, offer); err != nil {
		t.Fatalf("failed to create offer: %v", err)
	}

	stale := *task
	if err := tasks.Update(ctx, task); err != nil {
		t.Fatalf("failed to update task: %v", err)
	}

	if err := offers.Accept(ctx, offer, &stale); !errors.Is(err, ErrOptimisticLock) {
		t.Fatalf("expected ErrOptimisticLock, got %v", err)
	}

	reloaded, _ := offers.FindByID(ctx, offer.ID)
	if reloaded.Status != constants.OfferStatusPending {
		t.Errorf("expected offer rollback to PENDING, got %s", reloaded.Status)
	}
}

func TestOfferRepository_UpdateStatusOnlyFromPending(t *testing.T) {
	db := setupTestDB(t)
	offers := NewOfferRepository(db)
	ctx := context.Background()

	offer := &model.Offer{TaskID: "task-1", ProviderID: "provider-1", HourlyRate: decimal.NewFromInt(40), Currency: constants.CurrencyUSD}
	if err := offers.Create(ctx, offer); err != nil {
		t.Fatalf("failed to create offer: %v", err)
	}

	if err := offers.UpdateStatus(ctx, offer, constants.OfferStatusRejected); err != nil {
		t.Fatalf("failed to reject offer: %v", err)
	}

	if err := offers.UpdateStatus(ctx, offer, constants.OfferStatusAccepted); !errors.Is(err, ErrOfferNotPending) {
		t.Errorf("expected ErrOfferNotPending, got %v", err)
	}
}

func TestUserAndProviderRepository_Email(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserRepository(db)
	providers := NewProviderRepository(db)
	ctx := context.Background()

	user := &model.User{Profile: model.Profile{Email: "ann@example.com", PasswordHash: "x"}}
	if err := users.Create(ctx, user); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	if user.Role != constants.RoleUser {
		t.Errorf("expected role %s, got %s", constants.RoleUser, user.Role)
	}

	exists, err := users.ExistsByEmail(ctx, "ann@example.com")
	if err != nil || !exists {
		t.Errorf("expected email to exist, got %v (%v)", exists, err)
	}

	dup := &model.User{Profile: model.Profile{Email: "ann@example.com", PasswordHash: "y"}}
	if err := users.Create(ctx, dup); !errors.Is(err, ErrDuplicateEmail) {
		t.Errorf("expected ErrDuplicateEmail, got %v", err)
	}

	provider := &model.Provider{
		Profile:      model.Profile{Email: "bob@example.com", PasswordHash: "x"},
		ProviderType: constants.ProviderTypeIndividual,
	}
	if err := providers.Create(ctx, provider); err != nil {
		t.Fatalf("failed to create provider: %v", err)
	}

	dupProvider := &model.Provider{
		Profile:      model.Profile{Email: "bob@example.com", PasswordHash: "y"},
		ProviderType: constants.ProviderTypeIndividual,
	}
	if err := providers.Create(ctx, dupProvider); !errors.Is(err, ErrDuplicateEmail) {
		t.Errorf("expected ErrDuplicateEmail, got %v", err)
	}

	found, err := providers.FindByEmail(ctx, "bob@example.com")
	if err != nil || found.ID != provider.ID || found.Role != constants.RoleProvider {
		t.Errorf("unexpected provider lookup: %v (%v)", found, err)
	}

	if _, err := providers.FindByID(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSkillRepository_CRUD(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSkillRepository(db)
	ctx := context.Background()

	skill := &model.Skill{
		ProviderID: "provider-1",
		Category:   "plumbing",
		Experience: 4,
		WorkNature: "onsite",
		HourlyRate: decimal.NewFromInt(60),
		Currency:   constants.CurrencySGD,
	}
	if err := repo.Create(ctx, skill); err != nil {
		t.Fatalf("failed to create skill: %v", err)
	}

	skill.Experience = 5
	if err := repo.Update(ctx, skill); err != nil {
		t.Fatalf("failed to update skill: %v", err)
	}

	byCategory, err := repo.List(ctx, "plumbing")
	if err != nil || len(byCategory) != 1 || byCategory[0].Experience != 5 {
		t.Fatalf("unexpected category listing: %v (%v)", byCategory, err)
	}

	none, _ := repo.List(ctx, "carpentry")
	if len(none) != 0 {
		t.Errorf("expected empty listing, got %d", len(none))
	}

	if err := repo.Delete(ctx, skill.ID); err != nil {
		t.Fatalf("failed to delete skill: %v", err)
	}

	if err := repo.Delete(ctx, skill.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestEventRepository_Delivery(t *testing.T) {
	db := setupTestDB(t)
	repo := NewEventRepository(db)
	ctx := context.Background()

	event := &model.LifecycleEvent{
		Kind:       constants.EventTaskCreated,
		TaskID:     "task-1",
		ActorID:    "user-1",
		TaskStatus: constants.TaskStatusOpen,
	}
	if err := repo.Create(ctx, event); err != nil {
		t.Fatalf("failed to create event: %v", err)
	}

	pending, err := repo.ListUndelivered(ctx, 10)
	if err != nil || len(pending) != 1 {
		t.Fatalf("expected 1 undelivered event, got %d (%v)", len(pending), err)
	}

	if err := repo.IncrementAttempts(ctx, event); err != nil {
		t.Fatalf("failed to increment attempts: %v", err)
	}

	if err := repo.MarkDelivered(ctx, event); err != nil {
		t.Fatalf("failed to mark delivered: %v", err)
	}

	if event.Attempts != 2 || event.DeliveredAt == nil {
		t.Errorf("unexpected delivery state: attempts=%d delivered=%v", event.Attempts, event.DeliveredAt)
	}

	pending, _ = repo.ListUndelivered(ctx, 10)
	if len(pending) != 0 {
		t.Errorf("expected no undelivered events, got %d", len(pending))
	}

	if _, err := repo.ListUndelivered(ctx, 0); err == nil {
		t.Error("expected error for non-positive limit")
	}
}

func TestOfferRepository_ConcurrentAccept(t *testing.T) {
	db := setupTestDB(t)
	tasks := NewTaskRepository(db)
	offers := NewOfferRepository(db)
	ctx := context.Background()

	task := newTask("user-1")
	if err := tasks.Create(ctx, task); err != nil {
		t.Fatalf("failed to create task: %v", err)
	}

	const bidders = 5
	created := make([]*model.Offer, bidders)
	for i := range created {
		created[i] = &model.Offer{TaskID: task.ID, ProviderID: uuid.NewString(), HourlyRate: decimal.NewFromInt(30), Currency: constants.CurrencyUSD}
		if err := offers.Create(ctx, created[i]); err != nil {
			t.Fatalf("failed to create offer: %v", err)
		}
	}

	var wg sync.WaitGroup
	wg.Add(bidders)
	for _, o := range created {
		go func(o *model.Offer) {
			defer wg.Done()
			snapshot, err := tasks.FindByID(ctx, task.ID)
			if err != nil {
				return
			}
			_ = offers.Accept(ctx, o, snapshot)
		}(o)
	}
	wg.Wait()

	var accepted int64
	db.Model(&model.Offer{}).Where("task_id = ? AND status = ?", task.ID, constants.OfferStatusAccepted).Count(&accepted)
	if accepted != 1 {
		t.Errorf("expected exactly 1 accepted offer, got %d", accepted)
	}
}
