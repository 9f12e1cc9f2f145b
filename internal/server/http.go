package server

import (
	"errors"
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
	"github.com/karupanerura/rpn2tex/internal/rpn"
	"github.com/karupanerura/rpn2tex/internal/types"
)

const basePath = "/v1/conversions"

type conversion struct {
	Name       string         `json:"name"`
	CreateTime time.Time      `json:"createTime"`
	State      string         `json:"state"`
	Expression string         `json:"expression"`
	LaTeX      string         `json:"latex,omitempty"`
	Error      map[string]any `json:"error,omitempty"`
}

type httpHandler struct {
	idBase      uint64
	conversions sync.Map
}

func NewHTTPHandler() http.Handler {
	return &httpHandler{}
}

func (h *httpHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !strings.HasPrefix(r.URL.Path, basePath) {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}

	if r.URL.Path == basePath {
		switch r.Method {
		case http.MethodGet:
			h.listConversions(w, r)
		case http.MethodPost:
			h.createConversion(w, r)
		default:
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		}
		return
	}

	id := r.URL.Path[strings.LastIndexByte(r.URL.Path, '/')+1:]
	switch r.Method {
	case http.MethodGet:
		h.getConversion(w, r, id)
	default:
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
	}
}

func (h *httpHandler) createConversion(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var c *conversion
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		log.Printf("failed to decode request body: %v", err)
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	if c == nil || c.Expression == "" {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	id := fmt.Sprintf("%012x", atomic.AddUint64(&h.idBase, 1))
	c.Name = basePath + "/" + id
	c.CreateTime = time.Now().UTC()

	latex, err := rpn.Convert(c.Expression)
	if err == nil {
		c.State = "DONE"
		c.LaTeX = latex
	} else {
		// syntax errors are part of the conversion result, not an HTTP failure
		c.State = "FAILED"
		var syntaxErr *types.SyntaxError
		if errors.As(err, &syntaxErr) {
			c.Error = syntaxErr.Detail()
		} else {
			c.Error = map[string]any{"message": err.Error()}
		}
	}

	h.conversions.Store(id, c)
	resJSON(w, http.StatusOK, c)
}

func (h *httpHandler) listConversions(w http.ResponseWriter, r *http.Request) {
	results := []*conversion{}
	h.conversions.Range(func(key, value any) bool {
		results = append(results, value.(*conversion))
		return true
	})
	sort.Slice(results, func(i, j int) bool {
		if results[i].CreateTime.Equal(results[j].CreateTime) {
			return results[i].Name < results[j].Name
		}
		return results[i].CreateTime.Before(results[j].CreateTime)
	})

	resJSON(w, http.StatusOK, map[string][]*conversion{"conversions": results})
}

func (h *httpHandler) getConversion(w http.ResponseWriter, r *http.Request, id string) {
	ret, ok := h.conversions.Load(id)
	if !ok {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}

	resJSON(w, http.StatusOK, ret.(*conversion))
}

func resJSON(w http.ResponseWriter, status int, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
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
