package tracker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/subscription-tracker/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/subscription-tracker/internal/models"
	"github.com/magabrotheeeer/subscription-tracker/internal/storage"
)

func date(s string) time.Time {
	d, err := time.Parse(models.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestService_AddSubscription(t *testing.T) {
	user := &models.User{ID: 5, Name: "Alice", Email: "alice@example.com"}
	valid := models.NewSubscription{
		Name:      "Netflix",
		PlanType:  models.PlanMonthly,
		Cost:      decimal.RequireFromString("649.00"),
		StartDate: "2024-01-01",
		EndDate:   "2024-12-31",
	}
	created := &models.Subscription{
		ID:        10,
		UserID:    5,
		Name:      "Netflix",
		PlanType:  models.PlanMonthly,
		Cost:      valid.Cost,
		StartDate: date("2024-01-01"),
		EndDate:   date("2024-12-31"),
		Status:    models.SubscriptionActive,
	}

	with := func(f func(*models.NewSubscription)) models.NewSubscription {
		req := valid
		f(&req)
		return req
	}

	tests := []struct {
		name       string
		userID     int64
		req        models.NewSubscription
		setupMocks func(r *RepoMock)
		wantErr    error
	}{
		{
			name:   "success always active",
			userID: 5,
			req:    valid,
			setupMocks: func(r *RepoMock) {
				r.On("GetUser", mock.Anything, int64(5)).Return(user, nil).Once()
				r.On("CreateSubscription", mock.Anything, mock.MatchedBy(func(s models.Subscription) bool {
					return s.UserID == 5 &&
						s.Name == "Netflix" &&
						s.Status == models.SubscriptionActive &&
						s.StartDate.Equal(date("2024-01-01")) &&
						s.EndDate.Equal(date("2024-12-31"))
				})).Return(created, nil).Once()
			},
		},
		{
			name:   "user does not exist",
			userID: 999999,
			req:    valid,
			setupMocks: func(r *RepoMock) {
				r.On("GetUser", mock.Anything, int64(999999)).Return(nil, storage.ErrNotFound).Once()
			},
			wantErr: ErrNotFound,
		},
		{
			name:   "user deleted before insert",
			userID: 5,
			req:    valid,
			setupMocks: func(r *RepoMock) {
				r.On("GetUser", mock.Anything, int64(5)).Return(user, nil).Once()
				r.On("CreateSubscription", mock.Anything, mock.Anything).Return(nil, storage.ErrReferenced).Once()
			},
			wantErr: ErrNotFound,
		},
		{
			name:       "empty name",
			userID:     5,
			req:        with(func(r *models.NewSubscription) { r.Name = " " }),
			setupMocks: func(_ *RepoMock) {},
			wantErr:    ErrValidation,
		},
		{
			name:       "unknown plan",
			userID:     5,
			req:        with(func(r *models.NewSubscription) { r.PlanType = "weekly" }),
			setupMocks: func(_ *RepoMock) {},
			wantErr:    ErrValidation,
		},
		{
			name:       "negative cost",
			userID:     5,
			req:        with(func(r *models.NewSubscription) { r.Cost = decimal.NewFromInt(-1) }),
			setupMocks: func(_ *RepoMock) {},
			wantErr:    ErrValidation,
		},
		{
			name:       "fraction of a cent",
			userID:     5,
			req:        with(func(r *models.NewSubscription) { r.Cost = decimal.RequireFromString("9.999") }),
			setupMocks: func(_ *RepoMock) {},
			wantErr:    ErrValidation,
		},
		{
			name:       "cost too large for the column",
			userID:     5,
			req:        with(func(r *models.NewSubscription) { r.Cost = decimal.RequireFromString("10000000000") }),
			setupMocks: func(_ *RepoMock) {},
			wantErr:    ErrValidation,
		},
		{
			name:       "bad start date",
			userID:     5,
			req:        with(func(r *models.NewSubscription) { r.StartDate = "01-01-2024" }),
			setupMocks: func(_ *RepoMock) {},
			wantErr:    ErrValidation,
		},
		{
			name:       "end before start",
			userID:     5,
			req:        with(func(r *models.NewSubscription) { r.EndDate = "2023-12-31" }),
			setupMocks: func(_ *RepoMock) {},
			wantErr:    ErrValidation,
		},
		{
			name:   "store failure",
			userID: 5,
			req:    valid,
			setupMocks: func(r *RepoMock) {
				r.On("GetUser", mock.Anything, int64(5)).Return(nil, errors.New("connection reset")).Once()
			},
			wantErr: ErrStore,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			tt.setupMocks(repo)
			svc := New(repo, nil, nil, newNoopLogger())

			sub, err := svc.AddSubscription(context.Background(), tt.userID, tt.req)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, sub)
			} else {
				require.NoError(t, err)
				assert.Equal(t, created, sub)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestService_AddSubscription_PublishesEvent(t *testing.T) {
	user := &models.User{ID: 5}
	created := &models.Subscription{ID: 10, UserID: 5, Name: "Spotify", Status: models.SubscriptionActive}
	repo := new(RepoMock)
	pub := new(PublisherMock)
	repo.On("GetUser", mock.Anything, int64(5)).Return(user, nil).Once()
	repo.On("CreateSubscription", mock.Anything, mock.Anything).Return(created, nil).Once()
	pub.On("Publish", mock.Anything, rabbitmq.RoutingSubscriptionCreated, created).Return(nil).Once()

	svc := New(repo, nil, pub, newNoopLogger())
	_, err := svc.AddSubscription(context.Background(), 5, models.NewSubscription{
		Name:      "Spotify",
		PlanType:  models.PlanMonthly,
		Cost:      decimal.NewFromInt(119),
		StartDate: "2024-03-01",
		EndDate:   "2024-03-01",
	})
	require.NoError(t, err)
	pub.AssertExpectations(t)
}

func TestService_AddFromTemplate(t *testing.T) {
	user := &models.User{ID: 5, Name: "Alice"}
	netflix := &models.Template{ID: 1, Name: "Netflix", PlanType: models.PlanMonthly, Cost: decimal.NewFromInt(649)}
	amazon := &models.Template{ID: 4, Name: "Amazon Prime", PlanType: models.PlanYearly, Cost: decimal.NewFromInt(1499)}
	customCost := decimal.NewFromInt(299)
	badCost := decimal.NewFromInt(-5)
	subCent := decimal.RequireFromString("2.999")

	fromTemplate := func(tpl *models.Template) func(models.Subscription) bool {
		return func(s models.Subscription) bool {
			return s.UserID == 5 &&
				s.Name == tpl.Name &&
				s.PlanType == tpl.PlanType &&
				s.Cost.Equal(tpl.Cost) &&
				s.Status == models.SubscriptionActive
		}
	}

	tests := []struct {
		name       string
		ref        models.TemplateRef
		start, end string
		setupMocks func(r *RepoMock, c *CacheMock)
		wantName   string
		wantErr    error
	}{
		{
			name:  "by name",
			ref:   models.TemplateRef{Name: "Netflix"},
			start: "2024-01-01", end: "2024-02-01",
			setupMocks: func(r *RepoMock, _ *CacheMock) {
				r.On("GetUser", mock.Anything, int64(5)).Return(user, nil).Once()
				r.On("GetTemplateByName", mock.Anything, "Netflix").Return(netflix, nil).Once()
				r.On("CreateSubscription", mock.Anything, mock.MatchedBy(fromTemplate(netflix))).
					Return(&models.Subscription{ID: 11, UserID: 5, Name: "Netflix"}, nil).Once()
			},
			wantName: "Netflix",
		},
		{
			name:  "by index",
			ref:   models.TemplateRef{Index: 2},
			start: "2024-01-01", end: "2025-01-01",
			setupMocks: func(r *RepoMock, _ *CacheMock) {
				r.On("GetUser", mock.Anything, int64(5)).Return(user, nil).Once()
				r.On("ListTemplates", mock.Anything).Return([]*models.Template{netflix, amazon}, nil).Once()
				r.On("CreateSubscription", mock.Anything, mock.MatchedBy(fromTemplate(amazon))).
					Return(&models.Subscription{ID: 12, UserID: 5, Name: "Amazon Prime"}, nil).Once()
			},
			wantName: "Amazon Prime",
		},
		{
			name:  "index out of range",
			ref:   models.TemplateRef{Index: 3},
			start: "2024-01-01", end: "2025-01-01",
			setupMocks: func(r *RepoMock, _ *CacheMock) {
				r.On("GetUser", mock.Anything, int64(5)).Return(user, nil).Once()
				r.On("ListTemplates", mock.Anything).Return([]*models.Template{netflix, amazon}, nil).Once()
			},
			wantErr: ErrNotFound,
		},
		{
			name:  "unknown name without custom data",
			ref:   models.TemplateRef{Name: "Disney+"},
			start: "2024-01-01", end: "2024-02-01",
			setupMocks: func(r *RepoMock, _ *CacheMock) {
				r.On("GetUser", mock.Anything, int64(5)).Return(user, nil).Once()
				r.On("GetTemplateByName", mock.Anything, "Disney+").Return(nil, storage.ErrNotFound).Once()
			},
			wantErr: ErrNotFound,
		},
		{
			name:  "custom template is appended first",
			ref:   models.TemplateRef{Name: "Disney+", PlanType: models.PlanMonthly, Cost: &customCost},
			start: "2024-01-01", end: "2024-02-01",
			setupMocks: func(r *RepoMock, c *CacheMock) {
				disney := &models.Template{ID: 5, Name: "Disney+", PlanType: models.PlanMonthly, Cost: customCost}
				r.On("GetUser", mock.Anything, int64(5)).Return(user, nil).Once()
				r.On("GetTemplateByName", mock.Anything, "Disney+").Return(nil, storage.ErrNotFound).Once()
				r.On("CreateTemplate", mock.Anything, models.Template{Name: "Disney+", PlanType: models.PlanMonthly, Cost: customCost}).
					Return(disney, nil).Once()
				c.On("Invalidate", templatesCacheKey).Return(nil).Once()
				r.On("CreateSubscription", mock.Anything, mock.MatchedBy(fromTemplate(disney))).
					Return(&models.Subscription{ID: 13, UserID: 5, Name: "Disney+"}, nil).Once()
			},
			wantName: "Disney+",
		},
		{
			name:  "existing catalog entry wins over custom data",
			ref:   models.TemplateRef{Name: "Netflix", PlanType: models.PlanYearly, Cost: &customCost},
			start: "2024-01-01", end: "2024-02-01",
			setupMocks: func(r *RepoMock, _ *CacheMock) {
				r.On("GetUser", mock.Anything, int64(5)).Return(user, nil).Once()
				r.On("GetTemplateByName", mock.Anything, "Netflix").Return(netflix, nil).Once()
				r.On("CreateSubscription", mock.Anything, mock.MatchedBy(fromTemplate(netflix))).
					Return(&models.Subscription{ID: 14, UserID: 5, Name: "Netflix"}, nil).Once()
			},
			wantName: "Netflix",
		},
		{
			name:  "invalid custom template",
			ref:   models.TemplateRef{Name: "Disney+", PlanType: models.PlanMonthly, Cost: &badCost},
			start: "2024-01-01", end: "2024-02-01",
			setupMocks: func(r *RepoMock, _ *CacheMock) {
				r.On("GetUser", mock.Anything, int64(5)).Return(user, nil).Once()
				r.On("GetTemplateByName", mock.Anything, "Disney+").Return(nil, storage.ErrNotFound).Once()
			},
			wantErr: ErrValidation,
		},
		{
			name:  "custom cost with a fraction of a cent",
			ref:   models.TemplateRef{Name: "Disney+", PlanType: models.PlanMonthly, Cost: &subCent},
			start: "2024-01-01", end: "2024-02-01",
			setupMocks: func(r *RepoMock, _ *CacheMock) {
				r.On("GetUser", mock.Anything, int64(5)).Return(user, nil).Once()
				r.On("GetTemplateByName", mock.Anything, "Disney+").Return(nil, storage.ErrNotFound).Once()
			},
			wantErr: ErrValidation,
		},
		{
			name:  "existing catalog entry wins over invalid custom data",
			ref:   models.TemplateRef{Name: "Netflix", PlanType: "weekly", Cost: &badCost},
			start: "2024-01-01", end: "2024-02-01",
			setupMocks: func(r *RepoMock, _ *CacheMock) {
				r.On("GetUser", mock.Anything, int64(5)).Return(user, nil).Once()
				r.On("GetTemplateByName", mock.Anything, "Netflix").Return(netflix, nil).Once()
				r.On("CreateSubscription", mock.Anything, mock.MatchedBy(fromTemplate(netflix))).
					Return(&models.Subscription{ID: 15, UserID: 5, Name: "Netflix"}, nil).Once()
			},
			wantName: "Netflix",
		},
		{
			name:       "no name and no index",
			ref:        models.TemplateRef{},
			start:      "2024-01-01",
			end:        "2024-02-01",
			setupMocks: func(_ *RepoMock, _ *CacheMock) {},
			wantErr:    ErrValidation,
		},
		{
			name:       "bad dates checked before catalog write",
			ref:        models.TemplateRef{Name: "Disney+", PlanType: models.PlanMonthly, Cost: &customCost},
			start:      "2024-13-01",
			end:        "2024-02-01",
			setupMocks: func(_ *RepoMock, _ *CacheMock) {},
			wantErr:    ErrValidation,
		},
		{
			name:  "missing user checked before catalog write",
			ref:   models.TemplateRef{Name: "Disney+", PlanType: models.PlanMonthly, Cost: &customCost},
			start: "2024-01-01", end: "2024-02-01",
			setupMocks: func(r *RepoMock, _ *CacheMock) {
				r.On("GetUser", mock.Anything, int64(5)).Return(nil, storage.ErrNotFound).Once()
			},
			wantErr: ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			cache := new(CacheMock)
			tt.setupMocks(repo, cache)
			svc := New(repo, cache, nil, newNoopLogger())

			sub, err := svc.AddFromTemplate(context.Background(), 5, tt.ref, tt.start, tt.end)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, sub)
				repo.AssertNotCalled(t, "CreateTemplate", mock.Anything, mock.Anything)
				repo.AssertNotCalled(t, "CreateSubscription", mock.Anything, mock.Anything)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantName, sub.Name)
			}
			repo.AssertExpectations(t)
			cache.AssertExpectations(t)
		})
	}
}

func TestService_AddFromTemplate_CatalogWriteBeforeSubscription(t *testing.T) {
	cost := decimal.NewFromInt(299)
	tpl := &models.Template{ID: 5, Name: "Disney+", PlanType: models.PlanMonthly, Cost: cost}
	var order []string

	repo := new(RepoMock)
	repo.On("GetUser", mock.Anything, int64(5)).Return(&models.User{ID: 5}, nil).Once()
	repo.On("GetTemplateByName", mock.Anything, "Disney+").Return(nil, storage.ErrNotFound).Once()
	repo.On("CreateTemplate", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) { order = append(order, "template") }).
		Return(tpl, nil).Once()
	repo.On("CreateSubscription", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) { order = append(order, "subscription") }).
		Return(&models.Subscription{ID: 1, UserID: 5, Name: "Disney+"}, nil).Once()

	svc := New(repo, nil, nil, newNoopLogger())
	_, err := svc.AddFromTemplate(context.Background(), 5,
		models.TemplateRef{Name: "Disney+", PlanType: models.PlanMonthly, Cost: &cost}, "2024-01-01", "2024-02-01")

	require.NoError(t, err)
	assert.Equal(t, []string{"template", "subscription"}, order)
}

func TestService_AddFromTemplate_ConcurrentAppend(t *testing.T) {
	cost := decimal.NewFromInt(299)
	tpl := &models.Template{ID: 5, Name: "Disney+", PlanType: models.PlanMonthly, Cost: cost}

	repo := new(RepoMock)
	repo.On("GetUser", mock.Anything, int64(5)).Return(&models.User{ID: 5}, nil).Once()
	repo.On("GetTemplateByName", mock.Anything, "Disney+").Return(nil, storage.ErrNotFound).Once()
	repo.On("CreateTemplate", mock.Anything, mock.Anything).Return(nil, storage.ErrAlreadyExists).Once()
	repo.On("GetTemplateByName", mock.Anything, "Disney+").Return(tpl, nil).Once()
	repo.On("CreateSubscription", mock.Anything, mock.Anything).
		Return(&models.Subscription{ID: 1, UserID: 5, Name: "Disney+"}, nil).Once()

	svc := New(repo, nil, nil, newNoopLogger())
	sub, err := svc.AddFromTemplate(context.Background(), 5,
		models.TemplateRef{Name: "Disney+", PlanType: models.PlanMonthly, Cost: &cost}, "2024-01-01", "2024-02-01")

	require.NoError(t, err)
	assert.Equal(t, "Disney+", sub.Name)
	repo.AssertExpectations(t)
}

func TestService_ListSubscriptionsForUser(t *testing.T) {
	subs := []*models.Subscription{
		{ID: 1, UserID: 5, Name: "Netflix"},
		{ID: 2, UserID: 5, Name: "Spotify"},
	}

	t.Run("idempotent", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("GetUser", mock.Anything, int64(5)).Return(&models.User{ID: 5}, nil).Twice()
		repo.On("ListSubscriptionsByUser", mock.Anything, int64(5)).Return(subs, nil).Once()
		repo.On("ListSubscriptionsByUser", mock.Anything, int64(5)).
			Return([]*models.Subscription{subs[1], subs[0]}, nil).Once()
		svc := New(repo, nil, nil, newNoopLogger())

		first, err := svc.ListSubscriptionsForUser(context.Background(), 5)
		require.NoError(t, err)
		second, err := svc.ListSubscriptionsForUser(context.Background(), 5)
		require.NoError(t, err)

		assert.ElementsMatch(t, first, second)
	})

	t.Run("user not found", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("GetUser", mock.Anything, int64(9)).Return(nil, storage.ErrNotFound).Once()
		svc := New(repo, nil, nil, newNoopLogger())

		_, err := svc.ListSubscriptionsForUser(context.Background(), 9)
		assert.ErrorIs(t, err, ErrNotFound)
		repo.AssertNotCalled(t, "ListSubscriptionsByUser", mock.Anything, mock.Anything)
	})
}

func TestService_GetSubscription(t *testing.T) {
	repo := new(RepoMock)
	repo.On("GetSubscription", mock.Anything, int64(1)).Return(&models.Subscription{ID: 1}, nil).Once()
	repo.On("GetSubscription", mock.Anything, int64(2)).Return(nil, storage.ErrNotFound).Once()
	svc := New(repo, nil, nil, newNoopLogger())

	sub, err := svc.GetSubscription(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), sub.ID)

	_, err = svc.GetSubscription(context.Background(), 2)
	assert.ErrorIs(t, err, ErrNotFound)
}
