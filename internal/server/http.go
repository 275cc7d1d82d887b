package server

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/goccy/go-json"
	"github.com/karupanerura/expression-tree-calculator/internal/expression"
	"github.com/karupanerura/expression-tree-calculator/internal/types"
)

const basePath = "/v1/evaluations"

type evaluation struct {
	seq uint64

	Name       string             `json:"name"`
	CreateTime time.Time          `json:"createTime"`
	State      string             `json:"state"`
	Expression string             `json:"expression"`
	Strict     bool               `json:"strict,omitempty"`
	Tokens     []string           `json:"tokens"`
	Postfix    string             `json:"postfix"`
	Tree       string             `json:"tree,omitempty"`
	Result     *expression.Number `json:"result,omitempty"`
	Error      any                `json:"error,omitempty"`
}

type httpHandler struct {
	idBase      uint64
	evaluations sync.Map
	debug       bool
}

func (h *httpHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.URL.Path == basePath:
		switch r.Method {
		case http.MethodGet:
			h.listEvaluations(w, r)
			return

		case http.MethodPost:
			h.createEvaluation(w, r)
			return

		default:
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}

	case strings.HasPrefix(r.URL.Path, basePath+"/"):
		id := strings.TrimPrefix(r.URL.Path, basePath+"/")
		if id == "" || strings.ContainsRune(id, '/') {
			http.Error(w, "Not Found", http.StatusNotFound)
			return
		}

		switch r.Method {
		case http.MethodGet:
			h.getEvaluation(w, r, id)
			return

		default:
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}

	default:
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}
}

type createEvaluationRequest struct {
	Expression *string `json:"expression"`
	Strict     bool    `json:"strict"`
}

func (h *httpHandler) createEvaluation(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var req createEvaluationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("failed to decode request body: %v", err)
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	if req.Expression == nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	seq := atomic.AddUint64(&h.idBase, 1)
	id := fmt.Sprintf("%012x", seq)
	ev := &evaluation{
		seq:        seq,
		Name:       basePath + "/" + id,
		CreateTime: time.Now().UTC(),
		Expression: *req.Expression,
		Strict:     req.Strict,
	}
	h.evaluate(ev)
	h.evaluations.Store(id, ev)

	if err := resJSON(w, http.StatusOK, ev); err != nil {
		log.Printf("failed to write response: %v", err)
	}
}

func (h *httpHandler) evaluate(ev *evaluation) {
	calc := expression.Calculator{Strict: ev.Strict, Debug: h.debug}

	defer func() {
		if r := recover(); r != nil {
			log.Printf("recovered from panic while evaluating %q: %v", ev.Expression, r)
			ev.State = "FAILED"
			ev.Error = types.NewSystemError(r).Exception()
		}
	}()

	ret, err := calc.Calculate(ev.Expression)
	ev.Tokens = expression.TokenStrings(ret.Tokens)
	ev.Postfix = ret.PostfixString()
	if ret.Tree != nil {
		ev.Tree = ret.Tree.String()
	}
	if err != nil {
		ev.State = "FAILED"
		ev.Error = types.ExceptionOf(err)
		return
	}

	ev.State = "SUCCEEDED"
	ev.Result = &ret.Value
}

func (h *httpHandler) listEvaluations(w http.ResponseWriter, r *http.Request) {
	results := []*evaluation{}
	h.evaluations.Range(func(key, value any) bool {
		results = append(results, value.(*evaluation))
		return true
	})
	sort.Slice(results, func(i, j int) bool {
		return results[i].seq < results[j].seq
	})

	if err := resJSON(w, http.StatusOK, map[string][]*evaluation{"evaluations": results}); err != nil {
		log.Printf("failed to write response: %v", err)
	}
}

func (h *httpHandler) getEvaluation(w http.ResponseWriter, r *http.Request, id string) {
	ret, ok := h.evaluations.Load(id)
	if !ok {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}

	if err := resJSON(w, http.StatusOK, ret.(*evaluation)); err != nil {
		log.Printf("failed to write response: %v", err)
	}
}

// NewHTTPHandler returns a handler that evaluates expressions posted to
// /v1/evaluations and keeps every evaluation for later lookup.
func NewHTTPHandler(debug bool) http.Handler {
	return &httpHandler{debug: debug}
}

func resJSON(w http.ResponseWriter, status int, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return fmt.Errorf("json.MarshalIndent: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Length", strconv.Itoa(len(b)+1))
	w.WriteHeader(status)

	if _, err = w.Write(b); err != nil {
		return fmt.Errorf("w.Write: %w", err)
	}
	if _, err = io.WriteString(w, "\n"); err != nil {
		return fmt.Errorf("io.WriteString: %w", err)
	}
	return nil
}
