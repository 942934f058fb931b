package cache

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/groupfit/backend/domain"
	"github.com/groupfit/backend/repository"
)

// Cache holds the authoritative in-memory snapshot of one user's tasks,
// groupings and the roster of the currently selected grouping. It is the
// single writer against the remote store for task rows; every completed
// store call is applied as one atomic snapshot step under the mutex.
//
// Mutations are pessimistic: the store is written first and local state
// changes only after the store confirms. Two overlapping mutations on the
// same task are not serialized here; the snapshot converges to whichever
// response lands last, and Update re-fetches the full list for that reason.
type Cache struct {
	userID    string
	tasks     repository.TaskRepository
	groupings repository.GroupingRepository
	members   repository.MemberRepository
	profiles  repository.ProfileRepository
	logger    *zap.Logger

	mu               sync.RWMutex
	taskList         []domain.Task
	groupingList     []domain.Grouping
	roster           []domain.Membership
	selectedGrouping string
	tasksLoaded      bool
	groupingsLoaded  bool
}

// New builds a cache bound to one user session. Load must be called before
// the snapshot is meaningful.
func New(
	userID string,
	tasks repository.TaskRepository,
	groupings repository.GroupingRepository,
	members repository.MemberRepository,
	profiles repository.ProfileRepository,
	logger *zap.Logger,
) *Cache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cache{
		userID:    userID,
		tasks:     tasks,
		groupings: groupings,
		members:   members,
		profiles:  profiles,
		logger:    logger.With(zap.String("user_id", userID)),
	}
}

// UserID returns the owning user of this session cache.
func (c *Cache) UserID() string {
	return c.userID
}

// Load runs the initial grouping and task fetches. The two fetches are
// independent and issued concurrently; the cache is ready once both have
// completed at least once.
func (c *Cache) Load(ctx context.Context) error {
	if c.userID == "" {
		return domain.ErrNotAuthenticated
	}

	var (
		wg         sync.WaitGroup
		gErr, tErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		gErr = c.fetchGroupings(ctx)
	}()
	go func() {
		defer wg.Done()
		tErr = c.fetchTasks(ctx)
	}()
	wg.Wait()

	return errors.Join(gErr, tErr)
}

// Ready reports whether both initial fetches have completed.
func (c *Cache) Ready() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.tasksLoaded && c.groupingsLoaded
}

func (c *Cache) fetchGroupings(ctx context.Context) error {
	ids, err := c.members.GroupingIDs(ctx, c.userID)
	if err != nil {
		return domain.GatewayError("fetch grouping memberships", err)
	}

	list, err := c.groupings.ListByIDs(ctx, ids)
	if err != nil {
		return domain.GatewayError("fetch groupings", err)
	}

	// The personal grouping is identified once here; everything downstream
	// checks the flag, not the name.
	for i := range list {
		list[i].IsPersonal = list[i].Name == domain.PersonalGroupingName
	}

	c.mu.Lock()
	c.groupingList = list
	c.groupingsLoaded = true
	c.mu.Unlock()
	return nil
}

func (c *Cache) fetchTasks(ctx context.Context) error {
	list, err := c.tasks.ListForUser(ctx, c.userID)
	if err != nil {
		return domain.GatewayError("fetch tasks", err)
	}

	c.mu.Lock()
	c.taskList = list
	c.tasksLoaded = true
	c.mu.Unlock()
	return nil
}

// Tasks returns a copy of the current task snapshot.
func (c *Cache) Tasks() []domain.Task {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]domain.Task(nil), c.taskList...)
}

// Groupings returns a copy of the current grouping snapshot.
func (c *Cache) Groupings() []domain.Grouping {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]domain.Grouping(nil), c.groupingList...)
}

// SharedGroupings returns the groupings shown in group listings, i.e. all
// but the personal one.
func (c *Cache) SharedGroupings() []domain.Grouping {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var shared []domain.Grouping
	for _, g := range c.groupingList {
		if !g.IsPersonal {
			shared = append(shared, g)
		}
	}
	return shared
}

// GroupingIDs returns the ids of every grouping the user belongs to.
func (c *Cache) GroupingIDs() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ids := make([]string, 0, len(c.groupingList))
	for _, g := range c.groupingList {
		ids = append(ids, g.ID)
	}
	return ids
}

// Members returns the roster of the currently selected grouping.
func (c *Cache) Members() []domain.Membership {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]domain.Membership(nil), c.roster...)
}

// SelectedGrouping returns the currently selected grouping id, or "".
func (c *Cache) SelectedGrouping() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.selectedGrouping
}

// CreateTask stamps the creator, writes through to the store and appends the
// returned record to the snapshot. The snapshot is untouched when the store
// call fails.
func (c *Cache) CreateTask(ctx context.Context, draft domain.Task) (*domain.Task, error) {
	if c.userID == "" {
		return nil, domain.ErrNotAuthenticated
	}
	draft.ID = ""
	draft.CreatedBy = c.userID
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	created, err := c.tasks.Create(ctx, &draft)
	if err != nil {
		return nil, domain.GatewayError("create task", err)
	}

	c.mu.Lock()
	c.taskList = append(c.taskList, *created)
	c.mu.Unlock()

	c.logger.Debug("task created", zap.String("task_id", created.ID))
	return created, nil
}

// UpdateTask writes the full patched record through to the store and then
// replaces the snapshot wholesale with a fresh fetch, so server-side derived
// fields (completion attribution in particular) win over the client's view
// of the patch.
func (c *Cache) UpdateTask(ctx context.Context, taskID string, patch domain.Task) error {
	if c.userID == "" {
		return domain.ErrNotAuthenticated
	}
	patch.ID = taskID
	if err := patch.Validate(); err != nil {
		return err
	}

	if err := c.tasks.Update(ctx, &patch); err != nil {
		return domain.GatewayError("update task", err)
	}

	if err := c.fetchTasks(ctx); err != nil {
		// The write itself landed; the stale snapshot heals on the next
		// successful fetch.
		c.logger.Warn("task list refresh after update failed", zap.Error(err))
		return err
	}
	return nil
}

// DeleteTask writes a delete through to the store, then removes the matching
// snapshot entry by id.
func (c *Cache) DeleteTask(ctx context.Context, taskID string) error {
	if c.userID == "" {
		return domain.ErrNotAuthenticated
	}

	if err := c.tasks.Delete(ctx, taskID); err != nil {
		return domain.GatewayError("delete task", err)
	}

	c.mu.Lock()
	kept := c.taskList[:0]
	for _, t := range c.taskList {
		if t.ID != taskID {
			kept = append(kept, t)
		}
	}
	c.taskList = kept
	c.mu.Unlock()
	return nil
}

// SetSelectedGrouping switches the selected grouping. A non-empty id
// triggers a roster fetch combining membership rows with profile display
// names; an empty id clears the roster without any store call.
func (c *Cache) SetSelectedGrouping(ctx context.Context, groupingID string) error {
	if groupingID == "" {
		c.mu.Lock()
		c.selectedGrouping = ""
		c.roster = nil
		c.mu.Unlock()
		return nil
	}

	c.mu.Lock()
	// The previous grouping's roster must not survive a selection change,
	// even transiently while the new roster is in flight or if its fetch
	// fails.
	c.selectedGrouping = groupingID
	c.roster = nil
	c.mu.Unlock()

	members, err := c.members.ListByGrouping(ctx, groupingID)
	if err != nil {
		return domain.GatewayError("fetch grouping roster", err)
	}

	ids := make([]string, 0, len(members))
	for _, m := range members {
		ids = append(ids, m.UserID)
	}
	profiles, err := c.profiles.ListByIDs(ctx, ids)
	if err != nil {
		return domain.GatewayError("fetch member profiles", err)
	}
	names := make(map[string]string, len(profiles))
	for _, p := range profiles {
		names[p.ID] = p.FullName
	}
	for i := range members {
		members[i].Name = names[members[i].UserID]
	}

	c.mu.Lock()
	// A slower response for a previously selected grouping must not
	// overwrite the roster of the current one.
	if c.selectedGrouping == groupingID {
		c.roster = members
	}
	c.mu.Unlock()
	return nil
}

// RefreshGroupings re-runs the grouping-membership fetch. Group-creation
// flows call this so a new grouping shows up without a full reload.
func (c *Cache) RefreshGroupings(ctx context.Context) error {
	if c.userID == "" {
		return domain.ErrNotAuthenticated
	}
	return c.fetchGroupings(ctx)
}

// SearchTasks returns snapshot tasks whose title contains the query,
// case-insensitively, optionally restricted to one grouping.
func (c *Cache) SearchTasks(query, groupingID string) []domain.Task {
	if query == "" {
		return nil
	}
	needle := strings.ToLower(query)

	c.mu.RLock()
	defer c.mu.RUnlock()
	var results []domain.Task
	for _, t := range c.taskList {
		if groupingID != "" && t.GroupingID != groupingID {
			continue
		}
		if strings.Contains(strings.ToLower(t.Title), needle) {
			results = append(results, t)
		}
	}
	return results
}

// TasksOn returns snapshot tasks whose start falls on the given calendar
// day (YYYY-MM-DD), optionally restricted to one grouping.
func (c *Cache) TasksOn(dateKey, groupingID string) []domain.Task {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var results []domain.Task
	for _, t := range c.taskList {
		if groupingID != "" && t.GroupingID != groupingID {
			continue
		}
		if t.DateKey() == dateKey {
			results = append(results, t)
		}
	}
	return results
}

// UpcomingNotifications returns tasks with a notification instant inside
// (from, until]. Used by the notification scanner.
func (c *Cache) UpcomingNotifications(from, until time.Time) []domain.Task {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var due []domain.Task
	for _, t := range c.taskList {
		if t.Notification == nil {
			continue
		}
		if t.Notification.After(from) && !t.Notification.After(until) {
			due = append(due, t)
		}
	}
	return due
}
