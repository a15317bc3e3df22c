package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ApproveDeposit(c *gin.Context) {
	positionId, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "invalid position id"})
		return
	}
	if err := h.staking.ApproveDeposit(positionId, time.Now()); err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"approved": positionId})
}

func (h *Handler) RejectDeposit(c *gin.Context) {
	positionId, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "invalid position id"})
		return
	}
	if err := h.staking.RejectDeposit(positionId, time.Now()); err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"rejected": positionId})
}

func (h *Handler) ApproveWithdrawal(c *gin.Context) {
	withdrawalId, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "invalid withdrawal id"})
		return
	}
	if err := h.withdrawals.Approve(withdrawalId, time.Now()); err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"approved": withdrawalId})
}

func (h *Handler) RejectWithdrawal(c *gin.Context) {
	withdrawalId, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "invalid withdrawal id"})
		return
	}
	if err := h.withdrawals.Reject(withdrawalId); err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"rejected": withdrawalId})
}

func (h *Handler) GetPendingDeposits(c *gin.Context) {
	deposits := h.staking.GetPendingDeposits()
	if deposits == nil {
		c.JSON(http.StatusInternalServerError, Response{Success: false, Error: "failed to load deposits"})
		return
	}
	ok(c, deposits)
}

func (h *Handler) GetPendingWithdrawals(c *gin.Context) {
	withdrawals := h.withdrawals.GetPending()
	if withdrawals == nil {
		c.JSON(http.StatusInternalServerError, Response{Success: false, Error: "failed to load withdrawals"})
		return
	}
	ok(c, withdrawals)
}

func (h *Handler) GetAllActivities(c *gin.Context) {
	offset, limit := pagination(c)
	activities := h.activities.GetAll(offset, limit)
	if activities == nil {
		c.JSON(http.StatusInternalServerError, Response{Success: false, Error: "failed to load activities"})
		return
	}
	ok(c, activities)
}
