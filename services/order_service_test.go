package services

import (
	"context"
	"testing"

	"backend/entity"
	"backend/repository"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func initTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
	}
	if err := db.AutoMigrate(
		&entity.User{}, &entity.UserRole{},
		&entity.MenuItem{},
		&entity.Order{}, &entity.OrderItem{},
		&entity.Favorite{},
	); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}
	return db
}

func newOrderFixture(t *testing.T) (*OrderService, *gorm.DB, uint) {
	t.Helper()

	db := initTestDB(t)
	users := repository.NewUserRepository(db)
	orders := repository.NewOrderRepository(db)
	cart := NewCartStore(nil)

	u := entity.User{Email: "jane@example.com", FullName: "Jane", Phone: "0812345678"}
	require.NoError(t, users.Create(&u))

	return NewOrderService(db, orders, users, cart), db, u.ID
}

func TestDeliveryFee_FreeOverThreshold(t *testing.T) {
	require.Equal(t, int64(30), DeliveryFee(0))
	require.Equal(t, int64(30), DeliveryFee(299))
	require.Equal(t, int64(30), DeliveryFee(300))
	require.Equal(t, int64(0), DeliveryFee(301))
	require.Equal(t, int64(0), DeliveryFee(1000))
}

func TestSubmitFromCart_EmptyCart(t *testing.T) {
	svc, _, uid := newOrderFixture(t)

	_, err := svc.SubmitFromCart(context.Background(), uid)
	require.ErrorIs(t, err, ErrEmptyCart)
}

func TestSubmitFromCart_HappyPath(t *testing.T) {
	svc, db, uid := newOrderFixture(t)

	svc.Cart.AddItem(uid, menuItem(1, "Comfort Khichuri Bowl", 140))
	svc.Cart.AddItem(uid, menuItem(2, "Fresh Brewed Coffee", 60))
	svc.Cart.SetOpen(uid, true)

	out, err := svc.SubmitFromCart(context.Background(), uid)
	require.NoError(t, err)
	require.Equal(t, int64(200), out.Subtotal)
	require.Equal(t, int64(30), out.DeliveryFee)
	require.Equal(t, int64(230), out.TotalAmount)

	var o entity.Order
	require.NoError(t, db.First(&o, out.ID).Error)
	require.Equal(t, entity.StatusPending, o.Status)
	require.Equal(t, "Jane", o.CustomerName)
	require.Equal(t, int64(230), o.TotalAmount)

	var itemCount int64
	require.NoError(t, db.Model(&entity.OrderItem{}).Where("order_id = ?", out.ID).Count(&itemCount).Error)
	require.Equal(t, int64(2), itemCount)

	// ตะกร้าว่างและ drawer ปิดหลัง submit สำเร็จ
	require.Empty(t, svc.Cart.Lines(uid))
	require.False(t, svc.Cart.IsOpen(uid))
}

func TestSubmitFromCart_FreeDelivery(t *testing.T) {
	svc, _, uid := newOrderFixture(t)

	svc.Cart.AddItem(uid, menuItem(1, "Special Biryani", 280))
	svc.Cart.UpdateQuantity(uid, 1, 2)

	out, err := svc.SubmitFromCart(context.Background(), uid)
	require.NoError(t, err)
	require.Equal(t, int64(560), out.Subtotal)
	require.Zero(t, out.DeliveryFee)
	require.Equal(t, int64(560), out.TotalAmount)
}

func TestSubmitFromCart_PriceSnapshotFromCart(t *testing.T) {
	svc, db, uid := newOrderFixture(t)

	item := menuItem(1, "Avocado Toast Supreme", 180)
	svc.Cart.AddItem(uid, item)

	// ราคาเมนูขึ้นหลังจากของเข้าตะกร้าแล้ว
	require.NoError(t, db.Create(&entity.MenuItem{Name: item.Name, Price: 500}).Error)

	out, err := svc.SubmitFromCart(context.Background(), uid)
	require.NoError(t, err)
	require.Equal(t, int64(180), out.Subtotal)

	var oi entity.OrderItem
	require.NoError(t, db.Where("order_id = ?", out.ID).First(&oi).Error)
	require.Equal(t, int64(180), oi.Price)
}

func TestSubmitFromCart_LinesFailureKeepsCart(t *testing.T) {
	svc, db, uid := newOrderFixture(t)

	svc.Cart.AddItem(uid, menuItem(1, "Sweet Lassi", 140))

	// บังคับให้จังหวะเขียน lines ล้ม
	require.NoError(t, db.Migrator().DropTable(&entity.OrderItem{}))

	_, err := svc.SubmitFromCart(context.Background(), uid)
	require.Error(t, err)

	// ตะกร้าต้องไม่ถูกล้าง ให้ user ส่งใหม่ได้
	require.Len(t, svc.Cart.Lines(uid), 1)

	// header ที่ค้างถูกปิดเป็น cancelled ไม่โผล่เป็น order จริง
	var o entity.Order
	require.NoError(t, db.Where("user_id = ?", uid).First(&o).Error)
	require.Equal(t, entity.StatusCancelled, o.Status)
	require.NotEmpty(t, o.Notes)
}

func TestSubmitFromCart_RejectsConcurrentSubmit(t *testing.T) {
	svc, _, uid := newOrderFixture(t)
	svc.Cart.AddItem(uid, menuItem(1, "Sweet Lassi", 140))

	svc.mu.Lock()
	svc.inFlight[uid] = true
	svc.mu.Unlock()

	_, err := svc.SubmitFromCart(context.Background(), uid)
	require.ErrorIs(t, err, ErrSubmitInFlight)

	// user อื่นไม่โดนบล็อกไปด้วย
	other := entity.User{Email: "bob@example.com"}
	require.NoError(t, svc.Users.Create(&other))
	svc.Cart.AddItem(other.ID, menuItem(1, "Sweet Lassi", 140))

	_, err = svc.SubmitFromCart(context.Background(), other.ID)
	require.NoError(t, err)
}

func TestUpdateStatus_HappyPathAndGuard(t *testing.T) {
	svc, db, uid := newOrderFixture(t)

	o := entity.Order{UserID: uid, Status: entity.StatusPending, TotalAmount: 230}
	require.NoError(t, db.Create(&o).Error)

	updated, err := svc.UpdateStatus(o.ID, entity.StatusPreparing)
	require.NoError(t, err)
	require.Equal(t, entity.StatusPreparing, updated.Status)

	// ย้อนกลับไม่ได้
	_, err = svc.UpdateStatus(o.ID, entity.StatusPending)
	require.ErrorIs(t, err, ErrBadTransition)

	// ข้ามขั้นได้ตราบใดที่เดินหน้า
	updated, err = svc.UpdateStatus(o.ID, entity.StatusDelivered)
	require.NoError(t, err)
	require.Equal(t, entity.StatusDelivered, updated.Status)

	// terminal แล้วแก้อะไรไม่ได้อีก
	_, err = svc.UpdateStatus(o.ID, entity.StatusCancelled)
	require.ErrorIs(t, err, ErrBadTransition)
}

func TestUpdateStatus_UnknownStatus(t *testing.T) {
	svc, db, uid := newOrderFixture(t)

	o := entity.Order{UserID: uid, Status: entity.StatusPending}
	require.NoError(t, db.Create(&o).Error)

	_, err := svc.UpdateStatus(o.ID, "shipped")
	require.ErrorIs(t, err, ErrBadTransition)
}
