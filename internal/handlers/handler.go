package handlers

import (
	"net/http"
	"strconv"
	"time"
	"usdtstaking/internal/apperr"
	"usdtstaking/internal/config"
	"usdtstaking/internal/middleware"
	"usdtstaking/internal/models"
	"usdtstaking/internal/services"

	"github.com/gin-gonic/gin"
)

// Response is the JSON envelope used on every endpoint.
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

type Handler struct {
	users       *services.UserService
	plans       *services.PlanService
	staking     *services.StakingService
	rewards     *services.RewardService
	withdrawals *services.WithdrawalService
	referrals   *services.ReferralService
	activities  *services.ActivityService
	stats       *services.StatsService
}

func NewHandler(
	users *services.UserService,
	plans *services.PlanService,
	staking *services.StakingService,
	rewards *services.RewardService,
	withdrawals *services.WithdrawalService,
	referrals *services.ReferralService,
	activities *services.ActivityService,
	stats *services.StatsService) *Handler {
	return &Handler{
		users:       users,
		plans:       plans,
		staking:     staking,
		rewards:     rewards,
		withdrawals: withdrawals,
		referrals:   referrals,
		activities:  activities,
		stats:       stats,
	}
}

// fail maps the core error taxonomy onto HTTP statuses. Unauthorized
// stays generic so callers cannot probe for resource existence.
func fail(c *gin.Context, err error) {
	switch {
	case apperr.IsValidation(err):
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: err.Error()})
	case apperr.IsUnauthorized(err):
		c.JSON(http.StatusUnauthorized, Response{Success: false, Error: "unauthorized"})
	case apperr.IsNotFound(err):
		c.JSON(http.StatusNotFound, Response{Success: false, Error: err.Error()})
	case apperr.IsInvalidState(err), apperr.IsAlreadyClaimed(err):
		c.JSON(http.StatusConflict, Response{Success: false, Error: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, Response{Success: false, Error: "internal error"})
	}
}

func ok(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{Success: true, Data: data})
}

func (h *Handler) Register(c *gin.Context) {
	var req struct {
		Email        string `json:"email" binding:"required"`
		Username     string `json:"username" binding:"required"`
		Password     string `json:"password" binding:"required"`
		ReferralCode string `json:"referral_code"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "invalid request body"})
		return
	}

	user, err := h.users.Signup(req.Email, req.Username, req.Password, req.ReferralCode, time.Now())
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, user)
}

func (h *Handler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "invalid request body"})
		return
	}

	now := time.Now()
	user, err := h.users.Login(req.Email, req.Password, now)
	if err != nil {
		fail(c, err)
		return
	}

	token, err := middleware.IssueToken(config.JWT_SECRET, uint64(user.Id.Int64), user.IsAdmin, now)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"token": token, "user": user})
}

func (h *Handler) GetPlans(c *gin.Context) {
	plans := h.plans.GetAll()
	if plans == nil {
		c.JSON(http.StatusInternalServerError, Response{Success: false, Error: "failed to load plans"})
		return
	}
	ok(c, plans)
}

func (h *Handler) GetStats(c *gin.Context) {
	stats, err := h.stats.Get(time.Now())
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, stats)
}

func (h *Handler) CreatePosition(c *gin.Context) {
	var req struct {
		PlanId  uint64  `json:"plan_id" binding:"required"`
		Amount  float64 `json:"amount" binding:"required"`
		Network string  `json:"network" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "invalid request body"})
		return
	}

	pos, err := h.staking.CreatePosition(
		middleware.CurrentUserId(c),
		req.PlanId,
		req.Amount,
		models.Network(req.Network),
		time.Now(),
	)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, pos)
}

func (h *Handler) GetPositions(c *gin.Context) {
	positions := h.staking.GetUserPositions(middleware.CurrentUserId(c))
	if positions == nil {
		c.JSON(http.StatusInternalServerError, Response{Success: false, Error: "failed to load positions"})
		return
	}
	ok(c, positions)
}

func (h *Handler) ClaimReward(c *gin.Context) {
	positionId, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "invalid position id"})
		return
	}

	res, err := h.rewards.Claim(positionId, middleware.CurrentUserId(c), time.Now())
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, res)
}

func (h *Handler) RequestPositionWithdrawal(c *gin.Context) {
	positionId, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "invalid position id"})
		return
	}
	var req struct {
		Address string `json:"address" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "invalid request body"})
		return
	}

	res, err := h.withdrawals.RequestPositionWithdrawal(positionId, middleware.CurrentUserId(c), req.Address, time.Now())
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, res)
}

func (h *Handler) RequestWithdrawal(c *gin.Context) {
	var req struct {
		Amount  float64 `json:"amount" binding:"required"`
		Network string  `json:"network" binding:"required"`
		Address string  `json:"address" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "invalid request body"})
		return
	}

	w, err := h.withdrawals.RequestWithdrawal(
		middleware.CurrentUserId(c),
		req.Amount,
		models.Network(req.Network),
		req.Address,
		time.Now(),
	)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, w)
}

func (h *Handler) GetWithdrawals(c *gin.Context) {
	withdrawals := h.withdrawals.GetUserWithdrawals(middleware.CurrentUserId(c))
	if withdrawals == nil {
		c.JSON(http.StatusInternalServerError, Response{Success: false, Error: "failed to load withdrawals"})
		return
	}
	ok(c, withdrawals)
}

func (h *Handler) GetReferrals(c *gin.Context) {
	report, err := h.referrals.ComputeReferralBonus(middleware.CurrentUserId(c), time.Now())
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, report)
}

func (h *Handler) GetActivities(c *gin.Context) {
	offset, limit := pagination(c)
	activities := h.activities.GetUserActivities(middleware.CurrentUserId(c), offset, limit)
	if activities == nil {
		c.JSON(http.StatusInternalServerError, Response{Success: false, Error: "failed to load activities"})
		return
	}
	ok(c, activities)
}

func pagination(c *gin.Context) (offset, limit int) {
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return offset, limit
}
