package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableorder-backend/internal/model"
)

func TestCreateOrderComputesAggregates(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	biryani := seedMenuItem(t, s, "Chicken Biryani", "250.00", 25)
	_, err := s.CreateTable(ctx, 1)
	require.NoError(t, err)
	_, _, err = s.RegisterSession(ctx, 1, "D1")
	require.NoError(t, err)

	order, err := s.CreateOrder(ctx, NewOrder{
		TableNumber: 1,
		DeviceID:    "D1",
		Lines:       []model.OrderLine{{MenuItemID: biryani.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	assert.True(t, order.TotalAmount.Equal(mustDecimal(t, "250.00")), "total = 250.00, got %s", order.TotalAmount)
	assert.Equal(t, 25, order.MaxPrepTimeMinutes)
	assert.Equal(t, model.OrderPending, order.Status)

	lines, err := order.Lines()
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "Chicken Biryani", lines[0].Title)
	assert.True(t, lines[0].Price.Equal(mustDecimal(t, "250.00")))
}

func TestCreateOrderMultipleLines(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	biryani := seedMenuItem(t, s, "Chicken Biryani", "250.00", 25)
	chai := seedMenuItem(t, s, "Masala Chai", "40.00", 5)
	_, err := s.CreateTable(ctx, 1)
	require.NoError(t, err)

	order, err := s.CreateOrder(ctx, NewOrder{
		TableNumber: 1,
		DeviceID:    "D1",
		Lines: []model.OrderLine{
			{MenuItemID: biryani.ID, Quantity: 2},
			{MenuItemID: chai.ID, Quantity: 3},
		},
	})
	require.NoError(t, err)

	// 2*250 + 3*40 = 620; max prep is the biryani's 25 minutes.
	assert.True(t, order.TotalAmount.Equal(mustDecimal(t, "620.00")), "got %s", order.TotalAmount)
	assert.Equal(t, 25, order.MaxPrepTimeMinutes)
}

func TestCreateOrderCrossChecksSuppliedAggregates(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	biryani := seedMenuItem(t, s, "Chicken Biryani", "250.00", 25)
	_, err := s.CreateTable(ctx, 1)
	require.NoError(t, err)

	goodTotal := mustDecimal(t, "250.00")
	goodPrep := 25
	_, err = s.CreateOrder(ctx, NewOrder{
		TableNumber:        1,
		DeviceID:           "D1",
		Lines:              []model.OrderLine{{MenuItemID: biryani.ID, Quantity: 1}},
		TotalAmount:        &goodTotal,
		MaxPrepTimeMinutes: &goodPrep,
	})
	assert.NoError(t, err, "matching caller aggregates are accepted")

	badTotal := mustDecimal(t, "1.00")
	_, err = s.CreateOrder(ctx, NewOrder{
		TableNumber: 1,
		DeviceID:    "D1",
		Lines:       []model.OrderLine{{MenuItemID: biryani.ID, Quantity: 1}},
		TotalAmount: &badTotal,
	})
	assert.ErrorIs(t, err, ErrAggregateMismatch)

	badPrep := 5
	_, err = s.CreateOrder(ctx, NewOrder{
		TableNumber:        1,
		DeviceID:           "D1",
		Lines:              []model.OrderLine{{MenuItemID: biryani.ID, Quantity: 1}},
		MaxPrepTimeMinutes: &badPrep,
	})
	assert.ErrorIs(t, err, ErrAggregateMismatch)
}

func TestCreateOrderRejectsBadLines(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	biryani := seedMenuItem(t, s, "Chicken Biryani", "250.00", 25)
	_, err := s.CreateTable(ctx, 1)
	require.NoError(t, err)

	_, err = s.CreateOrder(ctx, NewOrder{TableNumber: 1, DeviceID: "D1"})
	assert.ErrorIs(t, err, ErrEmptyOrder)

	_, err = s.CreateOrder(ctx, NewOrder{
		TableNumber: 1,
		DeviceID:    "D1",
		Lines:       []model.OrderLine{{MenuItemID: biryani.ID, Quantity: 0}},
	})
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = s.CreateOrder(ctx, NewOrder{
		TableNumber: 1,
		DeviceID:    "D1",
		Lines:       []model.OrderLine{{MenuItemID: 999, Quantity: 1}},
	})
	assert.ErrorIs(t, err, ErrUnknownMenuItem)

	_, err = s.CreateOrder(ctx, NewOrder{
		TableNumber: 9,
		DeviceID:    "D1",
		Lines:       []model.OrderLine{{MenuItemID: biryani.ID, Quantity: 1}},
	})
	assert.ErrorIs(t, err, ErrNotFound, "absent table rejects the order")

	_, err = s.UpdateMenuItem(ctx, biryani.ID, MenuItemUpdate{
		Title:           biryani.Title,
		Price:           biryani.Price,
		PrepTimeMinutes: biryani.PrepTimeMinutes,
		IsAvailable:     false,
	})
	require.NoError(t, err)
	_, err = s.CreateOrder(ctx, NewOrder{
		TableNumber: 1,
		DeviceID:    "D1",
		Lines:       []model.OrderLine{{MenuItemID: biryani.ID, Quantity: 1}},
	})
	assert.ErrorIs(t, err, ErrItemUnavailable)
}

func TestOrderStatusTransitions(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	biryani := seedMenuItem(t, s, "Chicken Biryani", "250.00", 25)
	_, err := s.CreateTable(ctx, 1)
	require.NoError(t, err)

	newOrder := func() *model.Order {
		order, err := s.CreateOrder(ctx, NewOrder{
			TableNumber: 1,
			DeviceID:    "D1",
			Lines:       []model.OrderLine{{MenuItemID: biryani.ID, Quantity: 1}},
		})
		require.NoError(t, err)
		return order
	}

	t.Run("happy path to served", func(t *testing.T) {
		order := newOrder()
		for _, next := range []model.OrderStatus{model.OrderPreparing, model.OrderReady, model.OrderServed} {
			updated, err := s.UpdateOrderStatus(ctx, order.ID, next)
			require.NoError(t, err)
			assert.Equal(t, next, updated.Status)
		}
	})

	t.Run("cancel from pending and preparing", func(t *testing.T) {
		order := newOrder()
		_, err := s.UpdateOrderStatus(ctx, order.ID, model.OrderCancelled)
		assert.NoError(t, err)

		order = newOrder()
		_, err = s.UpdateOrderStatus(ctx, order.ID, model.OrderPreparing)
		require.NoError(t, err)
		_, err = s.UpdateOrderStatus(ctx, order.ID, model.OrderCancelled)
		assert.NoError(t, err)
	})

	t.Run("no backward or skipping moves", func(t *testing.T) {
		order := newOrder()
		_, err := s.UpdateOrderStatus(ctx, order.ID, model.OrderReady)
		assert.ErrorIs(t, err, ErrInvalidTransition, "pending cannot skip to ready")

		_, err = s.UpdateOrderStatus(ctx, order.ID, model.OrderPreparing)
		require.NoError(t, err)
		_, err = s.UpdateOrderStatus(ctx, order.ID, model.OrderPending)
		assert.ErrorIs(t, err, ErrInvalidTransition)

		_, err = s.UpdateOrderStatus(ctx, order.ID, model.OrderReady)
		require.NoError(t, err)
		_, err = s.UpdateOrderStatus(ctx, order.ID, model.OrderCancelled)
		assert.ErrorIs(t, err, ErrInvalidTransition, "ready orders can no longer be cancelled")

		_, err = s.UpdateOrderStatus(ctx, order.ID, model.OrderStatus("eaten"))
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})
}

func TestListOrdersFIFO(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	biryani := seedMenuItem(t, s, "Chicken Biryani", "250.00", 25)
	_, err := s.CreateTable(ctx, 1)
	require.NoError(t, err)
	_, err = s.CreateTable(ctx, 2)
	require.NoError(t, err)

	var ids []string
	for _, table := range []int{1, 2, 1} {
		order, err := s.CreateOrder(ctx, NewOrder{
			TableNumber: table,
			DeviceID:    "D1",
			Lines:       []model.OrderLine{{MenuItemID: biryani.ID, Quantity: 1}},
		})
		require.NoError(t, err)
		ids = append(ids, order.ID.String())
	}

	all, err := s.ListOrders(ctx, OrderFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	for i, order := range all {
		assert.Equal(t, ids[i], order.ID.String(), "orders come back in creation order")
	}

	tableOne := 1
	forTable, err := s.ListOrders(ctx, OrderFilter{TableNumber: &tableOne})
	require.NoError(t, err)
	assert.Len(t, forTable, 2)

	_, err = s.UpdateOrderStatus(ctx, all[0].ID, model.OrderPreparing)
	require.NoError(t, err)
	preparing := model.OrderPreparing
	byStatus, err := s.ListOrders(ctx, OrderFilter{Status: &preparing})
	require.NoError(t, err)
	require.Len(t, byStatus, 1)
	assert.Equal(t, ids[0], byStatus[0].ID.String())
}

func TestListOrdersTimeRange(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	biryani := seedMenuItem(t, s, "Chicken Biryani", "250.00", 25)
	_, err := s.CreateTable(ctx, 1)
	require.NoError(t, err)

	var orders []*model.Order
	for i := 0; i < 3; i++ {
		order, err := s.CreateOrder(ctx, NewOrder{
			TableNumber: 1,
			DeviceID:    "D1",
			Lines:       []model.OrderLine{{MenuItemID: biryani.ID, Quantity: 1}},
		})
		require.NoError(t, err)
		orders = append(orders, order)
		time.Sleep(2 * time.Millisecond)
	}

	// Both bounds are inclusive, so the middle order sits in every window
	// anchored on its own timestamp.
	mid := orders[1].CreatedAt
	fromMid, err := s.ListOrders(ctx, OrderFilter{Since: &mid})
	require.NoError(t, err)
	require.Len(t, fromMid, 2)
	assert.Equal(t, orders[1].ID, fromMid[0].ID)
	assert.Equal(t, orders[2].ID, fromMid[1].ID)

	untilMid, err := s.ListOrders(ctx, OrderFilter{Until: &mid})
	require.NoError(t, err)
	require.Len(t, untilMid, 2)
	assert.Equal(t, orders[0].ID, untilMid[0].ID)
	assert.Equal(t, orders[1].ID, untilMid[1].ID)

	onlyMid, err := s.ListOrders(ctx, OrderFilter{Since: &mid, Until: &mid})
	require.NoError(t, err)
	require.Len(t, onlyMid, 1)
	assert.Equal(t, orders[1].ID, onlyMid[0].ID)
}
