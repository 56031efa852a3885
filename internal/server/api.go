package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/tartampluch/go-wareki/internal/config"
	"github.com/tartampluch/go-wareki/internal/locale"
	"github.com/tartampluch/go-wareki/internal/textenc"
	"github.com/tartampluch/go-wareki/internal/wareki"
)

// Input formats reported by /api/validate.
const (
	formatWestern = "western"
	formatEra     = "era"
)

type errorResponse struct {
	Error  string `json:"error"`
	Reason string `json:"reason,omitempty"`
}

type eraResponse struct {
	Input string        `json:"input"`
	Era   wareki.Wareki `json:"era"`
	Text  string        `json:"text"`
}

type westernResponse struct {
	Input   string             `json:"input"`
	Western wareki.WesternDate `json:"western"`
	Text    string             `json:"text"`
}

type validateResponse struct {
	Input  string `json:"input"`
	Format string `json:"format,omitempty"`
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"`
	Label  string `json:"label"`
}

type infoResponse struct {
	Timestamp int64           `json:"timestamp"`
	Info      wareki.DateInfo `json:"info"`
	Text      string          `json:"text"`
}

type eraEntry struct {
	wareki.Era
	Label string `json:"label"`
}

// handleToEra converts ?date=YYYYMMDD (or a delimited form) to era notation.
func (s *Server) handleToEra(w http.ResponseWriter, r *http.Request) {
	input, ok := s.dateParam(w, r)
	if !ok {
		return
	}
	tr := s.translator(r)

	era, err := wareki.ConvertWesternToEra(input)
	if err != nil {
		s.reject(w, r, tr, input, err)
		return
	}
	writeJSON(w, http.StatusOK, eraResponse{
		Input: input,
		Era:   era,
		Text:  tr.FormatWareki(era, false),
	})
}

// handleToWestern converts ?date=<era date> to the Gregorian calendar.
func (s *Server) handleToWestern(w http.ResponseWriter, r *http.Request) {
	input, ok := s.dateParam(w, r)
	if !ok {
		return
	}
	tr := s.translator(r)

	western, err := wareki.ConvertEraToWestern(input)
	if err != nil {
		s.reject(w, r, tr, input, err)
		return
	}
	writeJSON(w, http.StatusOK, westernResponse{
		Input:   input,
		Western: western,
		Text:    tr.FormatWestern(western),
	})
}

// handleValidate reports whether ?date= is a valid western or era date.
// Invalid input is still a 200: the verdict is the payload.
func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	input, ok := s.dateParam(w, r)
	if !ok {
		return
	}
	tr := s.translator(r)

	resp := validateResponse{Input: input}
	var err error
	switch {
	case wareki.IsWesternFormat(input):
		resp.Format = formatWestern
		_, err = wareki.CheckWesternDate(input)
	case wareki.IsEraFormat(input):
		resp.Format = formatEra
		_, err = wareki.CheckEraDate(input)
	default:
		err = &wareki.DateError{Kind: wareki.FormatMismatch, Input: input}
	}

	resp.Valid = err == nil
	if err != nil {
		resp.Reason = string(wareki.Reason(err))
	}
	resp.Label = tr.Validity(resp.Valid)
	writeJSON(w, http.StatusOK, resp)
}

// handleInfo breaks ?ts= (Unix seconds, default now) into calendar fields.
func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	if !allowRead(w, r) {
		return
	}
	tr := s.translator(r)

	var ts int64
	if raw := r.URL.Query().Get(config.QueryTS); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: config.ErrTimestamp})
			return
		}
		ts = v
	} else {
		clock := s.Clock
		if clock == nil {
			clock = wareki.RealClock{}
		}
		ts = clock.Now().Unix()
	}

	info := wareki.DateInfoAt(ts)
	writeJSON(w, http.StatusOK, infoResponse{
		Timestamp: ts,
		Info:      info,
		Text:      tr.FormatInfo(info),
	})
}

// handleEras lists the era table with localized names.
func (s *Server) handleEras(w http.ResponseWriter, r *http.Request) {
	if !allowRead(w, r) {
		return
	}
	tr := s.translator(r)

	eras := wareki.Eras()
	out := make([]eraEntry, 0, len(eras))
	for _, e := range eras {
		out = append(out, eraEntry{Era: e, Label: tr.EraName(e)})
	}
	writeJSON(w, http.StatusOK, out)
}

// dateParam reads ?date=, folding full-width characters when enabled.
func (s *Server) dateParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	if !allowRead(w, r) {
		return "", false
	}
	input := r.URL.Query().Get(config.QueryDate)
	if input == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: config.HTTPMsgMissingDate})
		return "", false
	}
	if s.FoldWidth {
		input = textenc.FoldWidth(input)
	}
	return input, true
}

func (s *Server) translator(r *http.Request) *locale.Translator {
	return locale.FromAcceptLanguage(r.Header.Get("Accept-Language"), s.Translator)
}

// reject answers 422 with the localized reason and its stable code.
func (s *Server) reject(w http.ResponseWriter, r *http.Request, tr *locale.Translator, input string, err error) {
	kind := wareki.Reason(err)
	slog.Debug(config.MsgInputRejected,
		config.LogKeyComponent, config.CompServer,
		config.LogKeyRoute, r.URL.Path,
		config.LogKeyValue, input,
		config.LogKeyReason, kind,
	)
	writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
		Error:  tr.Reason(kind),
		Reason: string(kind),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set(config.HeaderContentType, config.MimeJSON)
	w.Header().Set(config.HeaderXContentType, config.MimeNoSniff)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error(config.ErrWriteResp,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyError, err,
		)
	}
}
