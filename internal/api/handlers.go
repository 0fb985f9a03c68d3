package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/QTest-hq/dtsgen/internal/ui5"
	"github.com/QTest-hq/dtsgen/internal/validator"
	"github.com/QTest-hq/dtsgen/internal/workspace"
	"github.com/QTest-hq/dtsgen/internal/wsdl"
	"github.com/QTest-hq/dtsgen/internal/xmltree"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error    string                  `json:"error"`
	Problems []validator.SyntaxError `json:"problems,omitempty"`
}

func (s *Server) limitBody(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.cfg.MaxBodyBytes > 0 {
			r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
		}
		next.ServeHTTP(w, r)
	})
}

func runID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(RunIDHeader, uuid.New().String())
		next.ServeHTTP(w, r)
	})
}

// generateWSDL renders the posted WSDL document.
// Query: namespace, typedefs ("A=string;B=number"), extension (default .d.ts),
// check.
func (s *Server) generateWSDL(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r)
	if !ok {
		return
	}

	doc, err := xmltree.ParseBytes(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	pkg, err := wsdl.NewParser(wsdl.DefaultBasicTypes...).Parse(doc)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	query := r.URL.Query()
	if pkg.Name == "" {
		pkg.Name = "service"
	}
	pkg.Namespace = query.Get("namespace")
	for _, t := range workspace.ParseTypedefs(query.Get("typedefs")) {
		pkg.Add(t)
	}

	extension := query.Get("extension")
	if extension == "" {
		extension = ".d.ts"
	}
	content, err := s.generator.Render(pkg, extension)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	log.Info().Str("package", pkg.Name).Int("elements", len(pkg.Elements)).Msg("wsdl generated")
	s.writeDeclarations(r.Context(), w, r, content)
}

// generateUI5 renders the posted UI5 library document
func (s *Server) generateUI5(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r)
	if !ok {
		return
	}

	doc, err := ui5.ParseAPI(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var out bytes.Buffer
	if err := ui5.NewExporter("").Export(doc, &out); err != nil {
		status := http.StatusUnprocessableEntity
		if errors.Is(err, ui5.ErrInvalidAPIData) {
			status = http.StatusBadRequest
		}
		writeError(w, status, err.Error())
		return
	}

	log.Info().Str("library", doc.Library).Msg("ui5 generated")
	s.writeDeclarations(r.Context(), w, r, out.String())
}

func (s *Server) writeDeclarations(ctx context.Context, w http.ResponseWriter, r *http.Request, content string) {
	if check, _ := strconv.ParseBool(r.URL.Query().Get("check")); check {
		problems, err := s.validator.Check(ctx, []byte(content))
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if len(problems) > 0 {
			writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
				Error:    "generated declarations have syntax errors",
				Problems: problems,
			})
			return
		}
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, content)
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, err.Error())
			return nil, false
		}
		writeError(w, http.StatusBadRequest, "failed to read body")
		return nil, false
	}
	if len(bytes.TrimSpace(body)) == 0 {
		writeError(w, http.StatusBadRequest, "empty body")
		return nil, false
	}
	return body, true
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}
