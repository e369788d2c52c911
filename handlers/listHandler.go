package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/margh00b/woodtrack_backend/models"
)

// ListRequest is the wire form of a filtered, sorted, paged list query.
// Filter values are decoded per the resource's field table: text fields take
// a string, exact fields a scalar, date fields an object with from/to.
type ListRequest struct {
	Filters    map[string]json.RawMessage `json:"filters"`
	Sort       *ListSort                  `json:"sort"`
	Page       ListPage                   `json:"page"`
	RequestKey string                     `json:"request_key"`
}

type ListSort struct {
	Field     string `json:"field"`
	Direction string `json:"direction"`
}

type ListPage struct {
	Index int `json:"index"`
	Size  int `json:"size"`
}

type dateRangeInput struct {
	From *time.Time `json:"from"`
	To   *time.Time `json:"to"`
}

// buildConditions turns raw filter values into typed conditions using the
// resource's field table. A value of the wrong shape fails here, before any
// SQL is built.
func buildConditions(resource string, filters map[string]json.RawMessage) ([]models.Condition, error) {
	spec, ok := models.GetResourceSpec(resource)
	if !ok {
		return nil, fmt.Errorf("unknown list resource %q", resource)
	}

	conds := make([]models.Condition, 0, len(filters))
	for name, raw := range filters {
		field, ok := spec.Fields[name]
		if !ok {
			return nil, fmt.Errorf("unknown filter field %q for resource %q", name, resource)
		}
		switch field.Kind {
		case models.KindText, models.KindTextMulti:
			var value string
			if err := json.Unmarshal(raw, &value); err != nil {
				return nil, fmt.Errorf("filter %q expects a string: %w", name, err)
			}
			conds = append(conds, models.TextMatch{Field: name, Value: value})
		case models.KindExact:
			var value any
			if err := json.Unmarshal(raw, &value); err != nil {
				return nil, fmt.Errorf("filter %q expects a scalar: %w", name, err)
			}
			conds = append(conds, models.ExactMatch{Field: name, Value: value})
		case models.KindDateRange:
			var value dateRangeInput
			if err := json.Unmarshal(raw, &value); err != nil {
				return nil, fmt.Errorf("filter %q expects {from, to}: %w", name, err)
			}
			conds = append(conds, models.DateRange{Field: name, From: value.From, To: value.To})
		default:
			return nil, fmt.Errorf("filter %q has an unsupported kind", name)
		}
	}
	return conds, nil
}

func compileListRequest(resource string, req *ListRequest) (*models.ListQuery, error) {
	conds, err := buildConditions(resource, req.Filters)
	if err != nil {
		return nil, err
	}

	var sort *models.SortSpec
	if req.Sort != nil && req.Sort.Field != "" {
		sort = &models.SortSpec{
			Field:     req.Sort.Field,
			Direction: models.SortDirection(req.Sort.Direction),
		}
	}

	return models.CompileListQuery(resource, conds, sort, models.PageWindow{
		Index: req.Page.Index,
		Size:  req.Page.Size,
	})
}

// listEndpoint builds one POST handler for a registered list resource. The
// row type parameter keeps the scan target and the response JSON typed.
func listEndpoint[T any](resource string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ListRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBadRequest(c, err)
			return
		}

		q, err := compileListRequest(resource, &req)
		if err != nil {
			respondBadRequest(c, err)
			return
		}

		rows, totalRows, err := models.FetchWindow[T](c.Request.Context(), q)
		if err != nil {
			respondError(c, "listHandler.go", "listEndpoint", resource, err)
			return
		}

		c.JSON(http.StatusOK, PaginatedResponse{
			Data:        rows,
			TotalRows:   totalRows,
			TotalPages:  models.TotalPages(totalRows, q.PageSize()),
			CurrentPage: req.Page.Index,
			PageSize:    q.PageSize(),
			RequestKey:  req.RequestKey,
		})
	}
}

// RegisterListRoutes wires every registered list resource under /list.
func RegisterListRoutes(r gin.IRouter) {
	r.POST("/list/plant-master", listEndpoint[models.PlantMasterRow](models.ResourcePlantMaster))
	r.POST("/list/plant-shipping", listEndpoint[models.PlantShippingRow](models.ResourcePlantShipping))
	r.POST("/list/inspection", listEndpoint[models.InspectionRow](models.ResourceInspection))
	r.POST("/list/sales", listEndpoint[models.SalesRow](models.ResourceSales))
	r.POST("/list/backorders", listEndpoint[models.Backorder](models.ResourceBackorders))
	r.POST("/list/invoices", listEndpoint[models.Invoice](models.ResourceInvoices))
	r.POST("/list/service-orders", listEndpoint[models.ServiceOrder](models.ResourceServiceOrders))
}
