package server

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"

	"github.com/katalvlaran/lvmesh/export"
	"github.com/katalvlaran/lvmesh/generate"
	"github.com/katalvlaran/lvmesh/geom"
	"github.com/katalvlaran/lvmesh/mesh"
	"github.com/katalvlaran/lvmesh/smooth"
)

// errBadBody marks an undecodable request body.
var errBadBody = errors.New("server: malformed request body")

type handlers struct {
	srv *Server
}

// MeshResponse is the body of a successful /mesh call.
type MeshResponse struct {
	Algorithm  generate.Algorithm `json:"algorithm"`
	Converged  bool               `json:"converged"`
	Iterations int                `json:"iterations"`
	Threshold  float64            `json:"threshold"`
	Bandwidth  int                `json:"bandwidth"`
	Smoothing  smooth.Result      `json:"smoothing"`
	Mesh       export.Record      `json:"mesh"`
}

// BatchRequest is the body of /mesh/batch.
type BatchRequest struct {
	Requests []generate.Request `json:"requests"`
}

// BatchResponse holds results in request order.
type BatchResponse struct {
	Results []MeshResponse `json:"results"`
}

func status(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, errBadBody), errors.Is(err, ErrBadID),
		errors.Is(err, geom.ErrGeometry), errors.Is(err, generate.ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, mesh.ErrMesh):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func fail(c *gin.Context, err error) {
	c.AbortWithStatusJSON(status(err), gin.H{"error": err.Error()})
}

// bind decodes the JSON body into v.
func bind(c *gin.Context, v any) error {
	if err := json.NewDecoder(c.Request.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: %w", errBadBody, err)
	}

	return nil
}

// reply encodes v with the same codec used for requests.
func reply(c *gin.Context, code int, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		fail(c, err)
		return
	}
	c.Data(code, "application/json; charset=utf-8", b)
}

func (h *handlers) info(c *gin.Context) {
	reply(c, http.StatusOK, gin.H{
		"service":    "lvmesh",
		"algorithms": []generate.Algorithm{generate.Delaunay, generate.Paving, generate.Annealing},
		"geometries": h.srv.store.Len(),
	})
}

func (h *handlers) createGeometry(c *gin.Context) {
	var p geom.Polygon
	if err := bind(c, &p); err != nil {
		fail(c, err)
		return
	}
	p, err := geom.NewPolygon(p.Name, p.Points)
	if err != nil {
		fail(c, err)
		return
	}
	id := h.srv.store.Put(p)
	reply(c, http.StatusCreated, gin.H{"id": id.String()})
}

func (h *handlers) getGeometry(c *gin.Context) {
	p, err := h.srv.store.Get(c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	reply(c, http.StatusOK, p)
}

// resolve applies defaults and replaces a geometry_id with its polygon.
func (h *handlers) resolve(req generate.Request) (generate.Request, error) {
	if req.GeometryID != "" {
		p, err := h.srv.store.Get(req.GeometryID)
		if err != nil {
			return req, err
		}
		req.Geometry = p
	}

	return req.WithDefaults(h.srv.defaults), nil
}

// run decodes, resolves and generates one request. On failure the error
// response is already written and ok is false.
func (h *handlers) run(c *gin.Context) (req generate.Request, res generate.Result, ok bool) {
	// 1) Bind.
	if err := bind(c, &req); err != nil {
		fail(c, err)
		return req, res, false
	}
	// 2) Resolve geometry_id and defaults.
	req, err := h.resolve(req)
	if err != nil {
		fail(c, err)
		return req, res, false
	}
	// 3) Generate.
	if res, err = generate.Generate(req); err != nil {
		fail(c, err)
		return req, res, false
	}

	return req, res, true
}

func response(res generate.Result) MeshResponse {
	return MeshResponse{
		Algorithm:  res.Algorithm,
		Converged:  res.Converged,
		Iterations: res.Iterations,
		Threshold:  res.Threshold,
		Bandwidth:  res.Bandwidth,
		Smoothing:  res.Smoothing,
		Mesh:       export.FromMesh(res.Mesh).WithStats(res.Mesh, res.Metric),
	}
}

func (h *handlers) generateMesh(c *gin.Context) {
	_, res, ok := h.run(c)
	if !ok {
		return
	}
	reply(c, http.StatusOK, response(res))
}

func (h *handlers) generateBatch(c *gin.Context) {
	var br BatchRequest
	if err := bind(c, &br); err != nil {
		fail(c, err)
		return
	}
	if len(br.Requests) == 0 || len(br.Requests) > h.srv.cfg.MaxBatch {
		fail(c, fmt.Errorf("%w: batch size %d not in [1, %d]",
			generate.ErrInvalidRequest, len(br.Requests), h.srv.cfg.MaxBatch))
		return
	}
	reqs := make([]generate.Request, len(br.Requests))
	for i, r := range br.Requests {
		var err error
		if reqs[i], err = h.resolve(r); err != nil {
			fail(c, fmt.Errorf("request %d: %w", i, err))
			return
		}
	}
	results, err := generate.Batch(c.Request.Context(), reqs, h.srv.cfg.BatchLimit)
	if err != nil {
		fail(c, err)
		return
	}
	out := BatchResponse{Results: make([]MeshResponse, len(results))}
	for i, r := range results {
		out.Results[i] = response(r)
	}
	reply(c, http.StatusOK, out)
}

func (h *handlers) exportCSV(c *gin.Context) {
	req, res, ok := h.run(c)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, req.Geometry, res.Mesh); err != nil {
		fail(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="mesh_data.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

func (h *handlers) exportGeoJSON(c *gin.Context) {
	_, res, ok := h.run(c)
	if !ok {
		return
	}
	b, err := export.GeoJSON(res.Mesh, res.Metric).MarshalJSON()
	if err != nil {
		fail(c, err)
		return
	}
	c.Data(http.StatusOK, "application/geo+json", b)
}
