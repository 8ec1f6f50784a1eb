package handlers

import (
	"log/slog"
	"net/http"

	"station-request-api-server/internal/cart"
	"station-request-api-server/internal/catalog"
	"station-request-api-server/internal/models"
	"station-request-api-server/internal/repository"
	"station-request-api-server/internal/session"

	"github.com/gin-gonic/gin"
)

type CartHandler struct {
	Station *session.Station
	Source  repository.Source
	Log     *slog.Logger
}

type CartLinePayload struct {
	SubSKUTypeID string `json:"subSkuTypeId" binding:"required"`
	Quantity     int    `json:"quantity"`
}

type UpdateQtyPayload struct {
	Quantity int `json:"quantity"`
}

type StepPayload struct {
	Delta int `json:"delta" binding:"required,oneof=-1 1"`
}

type SelectionPayload struct {
	Items []CartLinePayload `json:"items" binding:"dive"`
}

type ContainerSelectionPayload struct {
	ContainerID string   `json:"containerId" binding:"required"`
	SubtypeIDs  []string `json:"subtypeIds"`
}

type ReturnTrolleyPayload struct {
	Enabled *bool `json:"enabled" binding:"required"`
}

// update runs fn on the cart of the caller's session and answers with the
// resulting cart.
func (h *CartHandler) update(c *gin.Context, fn func(*cart.Cart) error) {
	var snap cart.Snapshot
	err := h.Station.WithCart(sessionID(c), func(ct *cart.Cart) error {
		if err := fn(ct); err != nil {
			return err
		}
		snap = ct.Snapshot()
		return nil
	})
	if err != nil {
		respondError(c, h.Log, "Failed to update cart", err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

func (h *CartHandler) GetCart(c *gin.Context) {
	h.update(c, func(*cart.Cart) error { return nil })
}

// AddItem adds a sub-SKU type to the material cart, merging with an
// existing line.
func (h *CartHandler) AddItem(c *gin.Context) {
	var payload CartLinePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	materials, err := h.Source.ListMaterials(c.Request.Context())
	if err != nil {
		respondError(c, h.Log, "Failed to list materials", err)
		return
	}
	item, err := catalog.CartItem(materials, payload.SubSKUTypeID, payload.Quantity)
	if err != nil {
		respondError(c, h.Log, "Failed to build cart item", err)
		return
	}
	h.update(c, func(ct *cart.Cart) error { return ct.Add(item) })
}

func (h *CartHandler) UpdateItem(c *gin.Context) {
	var payload UpdateQtyPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	id := c.Param("id")
	h.update(c, func(ct *cart.Cart) error { return ct.UpdateQty(id, payload.Quantity) })
}

func (h *CartHandler) StepItem(c *gin.Context) {
	var payload StepPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	id := c.Param("id")
	h.update(c, func(ct *cart.Cart) error {
		_, err := ct.Step(id, payload.Delta)
		return err
	})
}

func (h *CartHandler) RemoveItem(c *gin.Context) {
	id := c.Param("id")
	h.update(c, func(ct *cart.Cart) error {
		ct.Remove(id)
		return nil
	})
}

func (h *CartHandler) ClearCart(c *gin.Context) {
	h.update(c, func(ct *cart.Cart) error {
		ct.Clear()
		return nil
	})
}

// ReplaceSelection is step 1 of the material wizard: the material cart
// becomes exactly the selected rows.
func (h *CartHandler) ReplaceSelection(c *gin.Context) {
	var payload SelectionPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	materials, err := h.Source.ListMaterials(c.Request.Context())
	if err != nil {
		respondError(c, h.Log, "Failed to list materials", err)
		return
	}

	rows := make([]models.CartItem, 0, len(payload.Items))
	for _, line := range payload.Items {
		if line.Quantity == 0 {
			continue
		}
		item, err := catalog.CartItem(materials, line.SubSKUTypeID, line.Quantity)
		if err != nil {
			respondError(c, h.Log, "Failed to build cart item", err)
			return
		}
		rows = append(rows, item)
	}
	h.update(c, func(ct *cart.Cart) error { return ct.ReplaceFromSelection(rows) })
}

// SetContainers replaces the container cart with one of each chosen subtype.
// An empty subtype list clears it, as skipping the step does.
func (h *CartHandler) SetContainers(c *gin.Context) {
	var payload ContainerSelectionPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	containers, err := h.Source.ListContainers(c.Request.Context())
	if err != nil {
		respondError(c, h.Log, "Failed to list containers", err)
		return
	}
	container, err := catalog.FindContainer(containers, payload.ContainerID)
	if err != nil {
		respondError(c, h.Log, "Failed to find container", err)
		return
	}
	items, err := catalog.SelectContainers(container, payload.SubtypeIDs)
	if err != nil {
		respondError(c, h.Log, "Failed to select containers", err)
		return
	}
	h.update(c, func(ct *cart.Cart) error { return ct.SetContainers(items) })
}

func (h *CartHandler) ClearContainers(c *gin.Context) {
	h.update(c, func(ct *cart.Cart) error {
		ct.ClearContainers()
		return nil
	})
}

func (h *CartHandler) SetReturnTrolley(c *gin.Context) {
	var payload ReturnTrolleyPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.update(c, func(ct *cart.Cart) error {
		ct.SetReturnTrolley(*payload.Enabled)
		return nil
	})
}
