// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package catalog

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/olegiv/folio-go/internal/metrics"
	"github.com/olegiv/folio-go/internal/model"
	"github.com/olegiv/folio-go/internal/remote"
	"github.com/olegiv/folio-go/internal/remote/memstore"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var errRemoteDown = errors.New("remote unavailable")

func newTestStore(t *testing.T, r remote.Store, opts ...Option) *Store {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s := New(r, append([]Option{WithLogger(logger)}, opts...)...)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func project(id, category, date string) model.Project {
	return model.Project{
		ID:       id,
		Title:    "Project " + id,
		Category: category,
		ImageURL: "https://example.com/" + id + ".jpg",
		Date:     date,
	}
}

func seedRemote(t *testing.T, r *memstore.Store, projects ...model.Project) {
	t.Helper()
	for _, p := range projects {
		require.NoError(t, r.Insert(context.Background(), remote.TableProjects, model.ProjectRow(p)))
	}
}

func TestLoad_EmptyRemoteUsesDefaults(t *testing.T) {
	s := newTestStore(t, memstore.New())
	s.Load(context.Background())

	if diff := cmp.Diff(model.DefaultProjects(), s.Projects()); diff != "" {
		t.Errorf("projects mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(model.DefaultCategories(), s.Categories()); diff != "" {
		t.Errorf("categories mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, model.DefaultSiteConfig(), s.SiteConfig())
}

func TestLoad_RemoteRowsReplaceCache(t *testing.T) {
	r := memstore.New()
	seedRemote(t, r,
		project("a", "Logo", "2024-01-01"),
		project("b", "Logo", "2024-03-01"),
		project("c", "Tattoo", "2024-02-01"),
	)
	require.NoError(t, r.Insert(context.Background(), remote.TableCategories, model.CategoryRow(model.NewCategory("Logo"))))
	cfg := model.SiteConfig{HeroHeadline: "Hi", ContactEmail: "me@example.com"}
	require.NoError(t, r.Insert(context.Background(), remote.TableSiteConfig, model.SiteConfigSingletonRow(cfg)))

	s := newTestStore(t, r)
	s.Load(context.Background())

	ids := projectIDs(s.Projects())
	assert.Equal(t, []string{"b", "c", "a"}, ids, "newest first by date")
	assert.Equal(t, []model.Category{{ID: "logo", Name: "Logo"}}, s.Categories())
	assert.Equal(t, cfg, s.SiteConfig())
}

func TestLoad_ReadFailureWithEmptyCache(t *testing.T) {
	r := memstore.New()
	r.FailAll(errRemoteDown)

	s := newTestStore(t, r)
	s.Load(context.Background())

	if diff := cmp.Diff(model.DefaultProjects(), s.Projects()); diff != "" {
		t.Errorf("projects mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(model.DefaultCategories(), s.Categories()); diff != "" {
		t.Errorf("categories mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, model.DefaultSiteConfig(), s.SiteConfig())
}

func TestLoad_ReadFailureKeepsNonEmptyCache(t *testing.T) {
	r := memstore.New()
	seedRemote(t, r, project("a", "Logo", "2024-01-01"), project("b", "Logo", "2024-02-01"))

	s := newTestStore(t, r)
	s.Load(context.Background())
	before := s.Projects()
	require.Len(t, before, 2)

	r.Fail(remote.OpSelect, remote.TableProjects, errRemoteDown)
	s.Refresh(context.Background())

	if diff := cmp.Diff(before, s.Projects()); diff != "" {
		t.Errorf("cache changed on read failure (-want +got):\n%s", diff)
	}
}

func TestLoad_EmptyRemoteKeepsNonEmptyCache(t *testing.T) {
	r := memstore.New()
	seedRemote(t, r, project("a", "Logo", "2024-01-01"))

	s := newTestStore(t, r)
	s.Load(context.Background())

	require.NoError(t, r.Delete(context.Background(), remote.TableProjects, "a"))
	s.Refresh(context.Background())

	assert.Equal(t, []string{"a"}, projectIDs(s.Projects()))
}

func TestLoad_CategoriesAlwaysReplaced(t *testing.T) {
	r := memstore.New()
	require.NoError(t, r.Insert(context.Background(), remote.TableCategories, model.CategoryRow(model.NewCategory("Murals"))))

	s := newTestStore(t, r)
	s.Load(context.Background())
	require.Equal(t, []string{"Murals"}, categoryNames(s.Categories()))

	r.Fail(remote.OpSelect, remote.TableCategories, errRemoteDown)
	s.Refresh(context.Background())

	if diff := cmp.Diff(model.DefaultCategories(), s.Categories()); diff != "" {
		t.Errorf("categories mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_SiteConfigReadFailureKeepsCurrent(t *testing.T) {
	r := memstore.New()
	cfg := model.SiteConfig{HeroHeadline: "Stored"}
	require.NoError(t, r.Insert(context.Background(), remote.TableSiteConfig, model.SiteConfigSingletonRow(cfg)))

	s := newTestStore(t, r)
	s.Load(context.Background())
	require.Equal(t, cfg, s.SiteConfig())

	r.Fail(remote.OpSelectOne, remote.TableSiteConfig, errRemoteDown)
	s.Refresh(context.Background())
	assert.Equal(t, cfg, s.SiteConfig())
}

func TestLoad_MalformedRowIsReadFailure(t *testing.T) {
	r := memstore.New()
	row := model.ProjectRow(project("a", "Logo", "2024-01-01"))
	row["title"] = 3.5
	require.NoError(t, r.Insert(context.Background(), remote.TableProjects, row))

	s := newTestStore(t, r)
	s.Load(context.Background())

	assert.Equal(t, len(model.DefaultProjects()), len(s.Projects()))
}

// panicStore panics on every call, standing in for an unexpected failure.
type panicStore struct{ memstore.Store }

func (*panicStore) Select(context.Context, remote.Table, ...remote.Order) ([]remote.Row, error) {
	panic("boom")
}

func TestLoad_PanicFallsBackToDefaults(t *testing.T) {
	s := newTestStore(t, &panicStore{})
	s.Load(context.Background())

	assert.Len(t, s.Projects(), len(model.DefaultProjects()))
	assert.Len(t, s.Categories(), len(model.DefaultCategories()))
	assert.Equal(t, model.DefaultSiteConfig(), s.SiteConfig())
}

func TestAddProject_FailedInsertIsDiscarded(t *testing.T) {
	r := memstore.New()
	s := newTestStore(t, r)
	ctx := context.Background()

	s.Load(ctx)
	require.Equal(t, model.DefaultProjects(), s.Projects())
	require.Equal(t, model.DefaultCategories(), s.Categories())
	require.Equal(t, model.DefaultSiteConfig(), s.SiteConfig())

	r.FailOnce(remote.OpInsert, remote.TableProjects, errRemoteDown)
	s.AddProject(ctx, project("x1", "Logo", "2025-01-01"))
	require.Equal(t, "x1", s.Projects()[0].ID)

	s.Wait()

	assert.NotContains(t, projectIDs(s.Projects()), "x1")
	assert.Equal(t, 0, r.Len(remote.TableProjects))
}

func TestAddProject_SuccessfulInsertIsKept(t *testing.T) {
	r := memstore.New()
	s := newTestStore(t, r)
	ctx := context.Background()

	s.Load(ctx)
	s.AddProject(ctx, project("x1", "Logo", "2025-01-01"))
	s.Wait()

	assert.Equal(t, "x1", s.Projects()[0].ID)
	assert.Equal(t, 1, r.Len(remote.TableProjects))

	s.Refresh(ctx)
	assert.Equal(t, []string{"x1"}, projectIDs(s.Projects()))
}

func TestMutations_ReloadMatchesAppliedOperations(t *testing.T) {
	r := memstore.New()
	s := newTestStore(t, r)
	ctx := context.Background()
	s.Load(ctx)

	want := map[string]model.Project{}
	apply := func(p model.Project) { want[p.ID] = p }

	for _, p := range []model.Project{
		project("n1", "Logo", "2025-01-03"),
		project("n2", "Tattoo", "2025-01-01"),
		project("n3", "Logo", "2025-01-05"),
		project("n4", "Social Media Posts", "2025-01-02"),
	} {
		s.AddProject(ctx, p)
		apply(p)
	}
	s.Wait()

	s.DeleteProject(ctx, "n2")
	delete(want, "n2")

	updated := project("n4", "Logo", "2025-01-09")
	updated.Title = "Renamed"
	s.UpdateProject(ctx, updated)
	apply(updated)
	s.Wait()

	s.Refresh(ctx)

	expected := make([]model.Project, 0, len(want))
	for _, p := range want {
		expected = append(expected, p)
	}
	slices.SortFunc(expected, func(a, b model.Project) int { return strings.Compare(b.Date, a.Date) })

	if diff := cmp.Diff(expected, s.Projects()); diff != "" {
		t.Errorf("projects after reload mismatch (-want +got):\n%s", diff)
	}
}

func TestDeleteProject_Optimistic(t *testing.T) {
	r := memstore.New()
	seedRemote(t, r, project("a", "Logo", "2024-01-01"), project("b", "Logo", "2024-02-01"))
	s := newTestStore(t, r)
	ctx := context.Background()
	s.Load(ctx)

	s.DeleteProject(ctx, "a")
	assert.Equal(t, []string{"b"}, projectIDs(s.Projects()))
	s.Wait()
	assert.Equal(t, 1, r.Len(remote.TableProjects))
}

func TestDeleteProject_FailureRestoresRow(t *testing.T) {
	r := memstore.New()
	seedRemote(t, r, project("a", "Logo", "2024-01-01"), project("b", "Logo", "2024-02-01"))
	s := newTestStore(t, r)
	ctx := context.Background()
	s.Load(ctx)

	r.FailOnce(remote.OpDelete, remote.TableProjects, errRemoteDown)
	s.DeleteProject(ctx, "a")
	s.Wait()

	assert.Equal(t, []string{"b", "a"}, projectIDs(s.Projects()))
}

func TestUpdateProject_UnknownIDLeavesCache(t *testing.T) {
	r := memstore.New()
	seedRemote(t, r, project("a", "Logo", "2024-01-01"))
	s := newTestStore(t, r)
	ctx := context.Background()
	s.Load(ctx)
	before := s.Projects()

	s.UpdateProject(ctx, project("missing", "Logo", "2024-01-01"))
	s.Wait()

	assert.Equal(t, before, s.Projects())
	assert.Equal(t, 1, r.Calls(remote.OpUpdate))
}

func TestAddCategory(t *testing.T) {
	r := memstore.New()
	s := newTestStore(t, r)
	ctx := context.Background()
	s.Load(ctx)

	s.AddCategory(ctx, "Social Media Posts")
	cats := s.Categories()
	assert.Equal(t, model.Category{ID: "social-media-posts", Name: "Social Media Posts"}, cats[len(cats)-1])
	s.Wait()
	assert.Equal(t, 1, r.Len(remote.TableCategories))
}

func TestAddCategory_EmptyNameIgnored(t *testing.T) {
	r := memstore.New()
	s := newTestStore(t, r)
	s.Load(context.Background())
	before := s.Categories()

	s.AddCategory(context.Background(), "")
	s.Wait()

	assert.Equal(t, before, s.Categories())
	assert.Equal(t, 0, r.Calls(remote.OpInsert))
}

func TestAddCategory_CollidingIDDroppedByReload(t *testing.T) {
	r := memstore.New()
	require.NoError(t, r.Insert(context.Background(), remote.TableCategories, model.CategoryRow(model.NewCategory("Logo"))))
	s := newTestStore(t, r)
	ctx := context.Background()
	s.Load(ctx)

	s.AddCategory(ctx, "logo")
	require.Len(t, s.Categories(), 2)
	s.Wait()

	assert.Equal(t, []model.Category{{ID: "logo", Name: "Logo"}}, s.Categories())
}

func TestDeleteCategory_LeavesProjects(t *testing.T) {
	r := memstore.New()
	seedRemote(t, r, project("a", "Logo", "2024-01-01"))
	require.NoError(t, r.Insert(context.Background(), remote.TableCategories, model.CategoryRow(model.NewCategory("Logo"))))
	s := newTestStore(t, r)
	ctx := context.Background()
	s.Load(ctx)

	s.DeleteCategory(ctx, "logo")
	assert.Empty(t, s.Categories())
	assert.Equal(t, "Logo", s.Projects()[0].Category)
	s.Wait()
	assert.Equal(t, 0, r.Len(remote.TableCategories))
}

func TestUpdateSiteConfig(t *testing.T) {
	r := memstore.New()
	require.NoError(t, r.Insert(context.Background(), remote.TableSiteConfig,
		model.SiteConfigSingletonRow(model.DefaultSiteConfig())))

	s := newTestStore(t, r)
	ctx := context.Background()
	s.Load(ctx)

	cfg := model.DefaultSiteConfig()
	cfg.HeroHeadline = "New *headline*"
	s.UpdateSiteConfig(ctx, cfg)
	assert.Equal(t, cfg, s.SiteConfig())
	s.Wait()

	stored, err := r.SelectOne(ctx, remote.TableSiteConfig, remote.SiteConfigKey)
	require.NoError(t, err)
	got, err := model.SiteConfigFromRow(stored)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestUpdateSiteConfig_FailureReverts(t *testing.T) {
	r := memstore.New()
	s := newTestStore(t, r)
	ctx := context.Background()
	s.Load(ctx)

	r.FailOnce(remote.OpUpdate, remote.TableSiteConfig, errRemoteDown)
	cfg := model.DefaultSiteConfig()
	cfg.ContactEmail = "new@example.com"
	s.UpdateSiteConfig(ctx, cfg)
	s.Wait()

	assert.Equal(t, model.DefaultSiteConfig(), s.SiteConfig())
}

func TestMutation_OutlivesCanceledContext(t *testing.T) {
	r := memstore.New()
	s := newTestStore(t, r)
	s.Load(context.Background())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s.AddProject(ctx, project("x1", "Logo", "2025-01-01"))
	s.Wait()

	assert.Equal(t, 1, r.Len(remote.TableProjects))
}

func TestClose_RejectsMutations(t *testing.T) {
	r := memstore.New()
	s := newTestStore(t, r)
	ctx := context.Background()
	s.Load(ctx)
	require.NoError(t, s.Close())

	before := s.Projects()
	s.AddProject(ctx, project("x1", "Logo", "2025-01-01"))

	assert.Equal(t, before, s.Projects())
	assert.Equal(t, 0, r.Calls(remote.OpInsert))
}

func TestSubscribe(t *testing.T) {
	r := memstore.New()
	s := newTestStore(t, r)
	ctx := context.Background()

	var mu sync.Mutex
	var got []Change
	unsubscribe := s.Subscribe(func(c Change) {
		mu.Lock()
		defer mu.Unlock()
		got = append(got, c)
	})

	s.Load(ctx)
	s.AddCategory(ctx, "Murals")
	s.Wait()
	unsubscribe()
	unsubscribe()
	s.DeleteCategory(ctx, "murals")
	s.Wait()

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, got, 2)
	assert.True(t, got[0].Has(ProjectsChanged|CategoriesChanged))
	assert.False(t, got[0].Has(SiteConfigChanged), "site config not found remotely")
	assert.Equal(t, CategoriesChanged, got[1])
}

func TestSeedDefaults(t *testing.T) {
	r := memstore.New()
	s := newTestStore(t, r)
	ctx := context.Background()
	s.Load(ctx)

	require.NoError(t, s.SeedDefaults(ctx))

	assert.Equal(t, len(model.DefaultProjects()), r.Len(remote.TableProjects))
	assert.Equal(t, len(model.DefaultCategories()), r.Len(remote.TableCategories))
	assert.Equal(t, 1, r.Len(remote.TableSiteConfig))

	// Seeding twice overwrites rather than duplicating.
	require.NoError(t, s.SeedDefaults(ctx))
	assert.Equal(t, len(model.DefaultProjects()), r.Len(remote.TableProjects))
}

func TestSeedDefaults_KeepsStoredSiteConfig(t *testing.T) {
	r := memstore.New()
	edited := model.DefaultSiteConfig()
	edited.ContactEmail = "owner@studio.example"
	require.NoError(t, r.Insert(context.Background(), remote.TableSiteConfig, model.SiteConfigSingletonRow(edited)))

	// No Load: the in-memory config is still the built-in default.
	s := newTestStore(t, r)
	require.NoError(t, s.SeedDefaults(context.Background()))

	row, err := r.SelectOne(context.Background(), remote.TableSiteConfig, remote.SiteConfigKey)
	require.NoError(t, err)
	stored, err := model.SiteConfigFromRow(row)
	require.NoError(t, err)
	assert.Equal(t, edited, stored)
	assert.Equal(t, 2, r.Calls(remote.OpUpsert), "only projects and categories are upserted")
	assert.Equal(t, edited, s.SiteConfig(), "seed reloads the stored config")
}

func TestSeedDefaults_SiteConfigReadError(t *testing.T) {
	r := memstore.New()
	r.Fail(remote.OpSelectOne, remote.TableSiteConfig, errRemoteDown)
	s := newTestStore(t, r)

	err := s.SeedDefaults(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, errRemoteDown)
	assert.Equal(t, 0, r.Len(remote.TableSiteConfig))
}

func TestSeedDefaults_Error(t *testing.T) {
	r := memstore.New()
	r.Fail(remote.OpUpsert, remote.TableCategories, errRemoteDown)
	s := newTestStore(t, r)

	err := s.SeedDefaults(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, errRemoteDown)
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := metrics.NewCatalog(reg)
	require.NoError(t, err)

	r := memstore.New()
	s := newTestStore(t, r, WithMetrics(m))
	ctx := context.Background()
	s.Load(ctx)

	r.FailOnce(remote.OpInsert, remote.TableProjects, errRemoteDown)
	s.AddProject(ctx, project("x1", "Logo", "2025-01-01"))
	s.Wait()

	n, err := testutil.GatherAndCount(reg, "folio_catalog_remote_errors_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	n, err = testutil.GatherAndCount(reg, "folio_catalog_reloads_total")
	require.NoError(t, err)
	assert.Equal(t, 2, n, "startup and recovery series")
}

func projectIDs(ps []model.Project) []string {
	ids := make([]string, len(ps))
	for i, p := range ps {
		ids[i] = p.ID
	}
	return ids
}

func categoryNames(cs []model.Category) []string {
	names := make([]string, len(cs))
	for i, c := range cs {
		names[i] = c.Name
	}
	return names
}
