package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/matzehuels/pauliflow/pkg/buildinfo"
	"github.com/matzehuels/pauliflow/pkg/circuit"
	perrors "github.com/matzehuels/pauliflow/pkg/errors"
	"github.com/matzehuels/pauliflow/pkg/pauli"
	"github.com/matzehuels/pauliflow/pkg/pipeline"
	"github.com/matzehuels/pauliflow/pkg/render/nodelink"
	"github.com/matzehuels/pauliflow/pkg/synth"
)

type synthesizeResponse struct {
	RunID    string         `json:"run_id"`
	Qubits   int            `json:"qubits"`
	Gates    []circuit.Gate `json:"gates"`
	Stats    pipeline.Stats `json:"stats"`
	CacheHit bool           `json:"cache_hit"`
	Checked  bool           `json:"checked"`
}

type checkRequest struct {
	Operators []string         `json:"operators"`
	Circuit   *circuit.Circuit `json:"circuit"`
}

type checkResponse struct {
	OK      bool  `json:"ok"`
	Covered int   `json:"covered"`
	Total   int   `json:"total"`
	Missing []int `json:"missing,omitempty"`
}

type dagRequest struct {
	Operators  []string `json:"operators"`
	Detailed   bool     `json:"detailed,omitempty"`
	Transitive bool     `json:"transitive,omitempty"`
}

type errorBody struct {
	Error struct {
		Code    perrors.Code `json:"code"`
		Message string       `json:"message"`
	} `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, buildinfo.Get())
}

func (s *Server) handleSynthesize(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = pipeline.FormatJSON
	}
	if err := pipeline.ValidateCircuitFormat(format); err != nil {
		writeError(w, r, err)
		return
	}

	var opts pipeline.Options
	if err := decode(w, r, &opts); err != nil {
		writeError(w, r, err)
		return
	}
	opts.Logger = s.logger

	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if format != pipeline.FormatJSON {
		data, err := pipeline.FormatCircuit(res.Circuit, format)
		if err != nil {
			writeError(w, r, err)
			return
		}
		w.Header().Set("X-Run-ID", res.RunID)
		writeBytes(w, "text/plain; charset=utf-8", data)
		return
	}

	gates := res.Circuit.Gates
	if gates == nil {
		gates = []circuit.Gate{}
	}
	writeJSON(w, http.StatusOK, synthesizeResponse{
		RunID:    res.RunID,
		Qubits:   res.Circuit.Qubits,
		Gates:    gates,
		Stats:    res.Stats,
		CacheHit: res.CacheHit,
		Checked:  res.Checked,
	})
}

func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	var req checkRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if req.Circuit == nil {
		writeError(w, r, perrors.New(perrors.ErrCodeInvalidInput, "circuit is required"))
		return
	}
	if len(req.Operators) == 0 {
		writeError(w, r, perrors.New(perrors.ErrCodeInvalidInput, "at least one operator is required"))
		return
	}
	ops, err := pauli.FromStrings(req.Operators)
	if err != nil {
		writeError(w, r, err)
		return
	}

	err = synth.Check(ops, req.Circuit)
	var ce *synth.CheckError
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, checkResponse{OK: true, Covered: ops.Len(), Total: ops.Len()})
	case errors.As(err, &ce):
		writeJSON(w, http.StatusOK, checkResponse{Covered: ce.Covered, Total: ce.Total, Missing: ce.Missing})
	default:
		writeError(w, r, perrors.Wrap(perrors.ErrCodeInvalidCircuit, err, "circuit does not fit the operators"))
	}
}

func (s *Server) handleDAG(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = pipeline.FormatDOT
	}

	var req dagRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if len(req.Operators) == 0 {
		writeError(w, r, perrors.New(perrors.ErrCodeInvalidInput, "at least one operator is required"))
		return
	}

	data, err := s.runner.RenderDAG(r.Context(), req.Operators, format, nodelink.Options{
		Detailed:   req.Detailed,
		Transitive: req.Transitive,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	ctype := "text/vnd.graphviz; charset=utf-8"
	switch format {
	case pipeline.FormatSVG:
		ctype = "image/svg+xml"
	case pipeline.FormatPNG:
		ctype = "image/png"
	}
	writeBytes(w, ctype, data)
}

// decode reads a JSON body into v, rejecting unknown fields and trailing
// data.
func decode(w http.ResponseWriter, r *http.Request, v any) error {
	body := http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return perrors.Wrap(perrors.ErrCodeInvalidInput, err, "request body exceeds %d bytes", MaxBodyBytes)
		}
		return perrors.Wrap(perrors.ErrCodeInvalidInput, err, "decode request body")
	}
	if _, err := dec.Token(); err != io.EOF {
		return perrors.New(perrors.ErrCodeInvalidInput, "unexpected data after request body")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeBytes(w http.ResponseWriter, ctype string, data []byte) {
	w.Header().Set("Content-Type", ctype)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	writeErrorStatus(w, r, perrors.HTTPStatus(err), err)
}

func writeErrorStatus(w http.ResponseWriter, r *http.Request, status int, err error) {
	var body errorBody
	body.Error.Code = perrors.GetCode(err)
	if body.Error.Code == "" {
		body.Error.Code = perrors.ErrCodeInternal
	}
	body.Error.Message = perrors.UserMessage(err)
	body.RequestID = RequestID(r.Context())
	writeJSON(w, status, body)
}

func notFound(r *http.Request) error {
	return perrors.New(perrors.ErrCodeNotFound, "no route for %s %s", r.Method, r.URL.Path)
}

func methodNotAllowed(r *http.Request) error {
	return perrors.New(perrors.ErrCodeUnsupported, "method %s not allowed on %s", r.Method, r.URL.Path)
}
