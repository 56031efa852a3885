package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-wareki/internal/config"
	"github.com/tartampluch/go-wareki/internal/wareki"
)

// get issues a request against the full routing table and decodes the JSON body.
func get(t *testing.T, srv *Server, route, query, acceptLang string, out any) *httptest.ResponseRecorder {
	t.Helper()
	target := route
	if query != "" {
		target += "?" + query
	}
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if acceptLang != "" {
		req.Header.Set("Accept-Language", acceptLang)
	}
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	if out != nil {
		assert.Equal(t, config.MimeJSON, w.Header().Get(config.HeaderContentType))
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), out), w.Body.String())
	}
	return w
}

func dateQuery(s string) string {
	return url.Values{config.QueryDate: {s}}.Encode()
}

func TestAPI_ToEra(t *testing.T) {
	srv := newTestServer()

	var resp eraResponse
	w := get(t, srv, config.RouteToEra, dateQuery("20190501"), "", &resp)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "20190501", resp.Input)
	assert.Equal(t, wareki.Wareki{Name: "令和", ShortName: "R", Year: "1", Month: "05", Day: "01"}, resp.Era)
	assert.Equal(t, "令和1年5月1日", resp.Text)
}

func TestAPI_ToEra_English(t *testing.T) {
	srv := newTestServer()

	var resp eraResponse
	get(t, srv, config.RouteToEra, dateQuery("1989/01/08"), "en-US,en;q=0.9", &resp)

	assert.Equal(t, "平成", resp.Era.Name)
	assert.Contains(t, resp.Text, "Heisei")
}

func TestAPI_ToEra_Rejected(t *testing.T) {
	srv := newTestServer()

	tests := []struct {
		input string
		kind  wareki.ErrorKind
	}{
		{"2019.05.01", wareki.FormatMismatch},
		{"20190230", wareki.CalendarInvalid},
		{"18681022", wareki.OutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var resp errorResponse
			w := get(t, srv, config.RouteToEra, dateQuery(tt.input), "", &resp)

			assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
			assert.Equal(t, string(tt.kind), resp.Reason)
			assert.Equal(t, srv.Translator.Reason(tt.kind), resp.Error)
		})
	}
}

func TestAPI_ToWestern(t *testing.T) {
	srv := newTestServer()

	tests := []struct {
		input string
		want  string
	}{
		{"令和元年5月1日", "20190501"},
		{"H31年04月30日", "20190430"},
		{"昭和64年1月7日", "19890107"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var resp westernResponse
			w := get(t, srv, config.RouteToWest, dateQuery(tt.input), "", &resp)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.want, resp.Western.Date)
			assert.NotEmpty(t, resp.Text)
		})
	}

	var bad errorResponse
	w := get(t, srv, config.RouteToWest, dateQuery("令和"), "", &bad)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, string(wareki.FormatMismatch), bad.Reason)
}

func TestAPI_FoldWidth(t *testing.T) {
	srv := newTestServer()
	full := dateQuery("２０１９０５０１")

	w := get(t, srv, config.RouteToEra, full, "", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	srv.FoldWidth = true
	var resp eraResponse
	w = get(t, srv, config.RouteToEra, full, "", &resp)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "20190501", resp.Input)
}

func TestAPI_Validate(t *testing.T) {
	srv := newTestServer()

	tests := []struct {
		input  string
		format string
		valid  bool
		reason wareki.ErrorKind
	}{
		{"2020-02-29", formatWestern, true, ""},
		{"2019-02-29", formatWestern, false, wareki.CalendarInvalid},
		{"平成31年4月30日", formatEra, true, ""},
		{"R2年13月01日", formatEra, false, wareki.CalendarInvalid},
		{"tomorrow", "", false, wareki.FormatMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var resp validateResponse
			w := get(t, srv, config.RouteValidate, dateQuery(tt.input), "", &resp)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.format, resp.Format)
			assert.Equal(t, tt.valid, resp.Valid)
			assert.Equal(t, string(tt.reason), resp.Reason)
			assert.Equal(t, srv.Translator.Validity(tt.valid), resp.Label)
		})
	}
}

func TestAPI_MissingDate(t *testing.T) {
	srv := newTestServer()

	for _, route := range []string{config.RouteToEra, config.RouteToWest, config.RouteValidate} {
		var resp errorResponse
		w := get(t, srv, route, "", "", &resp)
		assert.Equal(t, http.StatusBadRequest, w.Code, route)
		assert.Equal(t, config.HTTPMsgMissingDate, resp.Error)
	}
}

func TestAPI_Info(t *testing.T) {
	srv := newTestServer()
	ts := time.Date(2019, 5, 1, 13, 4, 5, 0, time.Local).Unix()

	var resp infoResponse
	w := get(t, srv, config.RouteInfo, url.Values{config.QueryTS: {strconv.FormatInt(ts, 10)}}.Encode(), "", &resp)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, ts, resp.Timestamp)
	assert.Equal(t, wareki.DateInfo{Year: "2019", Month: "05", Day: "01", Hour: "13", Minutes: "04", Second: "05", Week: "水"}, resp.Info)
	assert.Equal(t, "2019年5月1日(水曜日) 13:04:05", resp.Text)
}

func TestAPI_Info_DefaultsToClock(t *testing.T) {
	srv := newTestServer()

	var resp infoResponse
	get(t, srv, config.RouteInfo, "", "", &resp)

	assert.Equal(t, srv.Clock.Now().Unix(), resp.Timestamp)
}

func TestAPI_Info_BadTimestamp(t *testing.T) {
	srv := newTestServer()

	var resp errorResponse
	w := get(t, srv, config.RouteInfo, "ts=soon", "", &resp)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, config.ErrTimestamp, resp.Error)
}

func TestAPI_Eras(t *testing.T) {
	srv := newTestServer()

	var resp []eraEntry
	get(t, srv, config.RouteEras, "", "en", &resp)

	require.Len(t, resp, len(wareki.Eras()))
	assert.Equal(t, "M", resp[0].ShortName)
	assert.Equal(t, 18681023, resp[0].StartDate)
	assert.Equal(t, "Reiwa", resp[4].Label)
	assert.Equal(t, wareki.OpenEnded, resp[4].EndDate)
}

func TestAPI_MethodNotAllowed(t *testing.T) {
	srv := newTestServer()

	for _, route := range []string{config.RouteToEra, config.RouteInfo, config.RouteEras} {
		req := httptest.NewRequest(http.MethodPost, route, nil)
		w := httptest.NewRecorder()
		srv.Handler().ServeHTTP(w, req)

		assert.Equal(t, http.StatusMethodNotAllowed, w.Code, route)
	}
}
