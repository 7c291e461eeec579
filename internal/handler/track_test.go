package handler

import (
	"net/http"
	"testing"

	"redirector/internal/mocks"
	"redirector/internal/model"
	"redirector/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTrackRouter(t *testing.T) (*gin.Engine, linkMocks) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	m := linkMocks{
		links:    mocks.NewMockLinkServiceInterface(ctrl),
		recorder: mocks.NewMockClickRecorderInterface(ctrl),
		geo:      mocks.NewMockGeoResolverInterface(ctrl),
	}
	h := NewTrackHandler(m.links, m.recorder, m.geo, "CF-IPCountry")

	router := gin.New()
	router.POST("/api/v1/analytics/track", h.Track)
	return router, m
}

func TestTrackHandler_Track(t *testing.T) {
	t.Run("records enriched click", func(t *testing.T) {
		router, m := newTestTrackRouter(t)

		link := &model.Link{ID: 7, Code: "promo7", IsActive: true}
		country := "Brazil"
		m.links.EXPECT().Resolve(gomock.Any(), "promo7").Return(link, nil)
		m.geo.EXPECT().Resolve(gomock.Any(), "203.0.113.45", "").Return(model.GeoLocation{Country: &country})
		m.recorder.EXPECT().Record(gomock.Any(), int64(7), "promo7", gomock.Any()).
			DoAndReturn(func(_ interface{}, _ int64, _ string, in model.ClickInput) model.RecordResult {
				assert.Equal(t, "203.0.113.0", in.IP)
				assert.Equal(t, "https://blog.example.com/?utm_source=news&utm_campaign=may", in.Referer)
				assert.Equal(t, "news", in.UTM.Source)
				assert.Equal(t, "may", in.UTM.Campaign)
				require.NotNil(t, in.Geo.Country)
				assert.Equal(t, "Brazil", *in.Geo.Country)
				require.NotNil(t, in.WaitedFull)
				assert.True(t, *in.WaitedFull)
				require.NotNil(t, in.TimeOnPage)
				assert.Equal(t, 6, *in.TimeOnPage)
				assert.Nil(t, in.ClickedButton)
				return model.RecordResult{FastCount: 3, Unique: true}
			})

		w := serve(router, "POST", "/api/v1/analytics/track", `{"linkCode":"promo7","waitedFull":true,"timeOnPage":6}`, map[string]string{
			"X-Forwarded-For": "203.0.113.45, 10.0.0.1",
			"Referer":         "https://blog.example.com/?utm_source=news&utm_campaign=may",
		})
		assert.Equal(t, http.StatusOK, w.Code)

		var res TrackResult
		decodeData(t, w, &res)
		assert.True(t, res.Unique)
	})

	t.Run("missing link code", func(t *testing.T) {
		router, _ := newTestTrackRouter(t)

		w := serve(router, "POST", "/api/v1/analytics/track", `{"waitedFull":true}`, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown link", func(t *testing.T) {
		router, m := newTestTrackRouter(t)
		m.links.EXPECT().Resolve(gomock.Any(), "gone01").Return(nil, service.ErrLinkNotFound)

		w := serve(router, "POST", "/api/v1/analytics/track", `{"linkCode":"gone01"}`, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("recording failures stay invisible", func(t *testing.T) {
		router, m := newTestTrackRouter(t)

		m.links.EXPECT().Resolve(gomock.Any(), "promo7").Return(&model.Link{ID: 7, Code: "promo7"}, nil)
		m.geo.EXPECT().Resolve(gomock.Any(), gomock.Any(), gomock.Any()).Return(model.GeoLocation{})

		res := model.RecordResult{Unique: true}
		res.Fail(model.StepFastCounter, assert.AnError)
		res.Fail(model.StepDurableEvent, assert.AnError)
		m.recorder.EXPECT().Record(gomock.Any(), int64(7), "promo7", gomock.Any()).Return(res)

		w := serve(router, "POST", "/api/v1/analytics/track", `{"linkCode":"promo7"}`, nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
