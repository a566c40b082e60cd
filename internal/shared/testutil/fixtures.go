package testutil

import (
	"fmt"
	"testing"
	"time"

	"github.com/nagoyameshi/go-api-server/internal/model"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// TestPassword is the plain password of every fixture account.
const TestPassword = "password123"

var hashedTestPassword = func() string {
	hashed, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	return string(hashed)
}()

// CustomerID is the billing customer id fixtures assign to a member.
func CustomerID(memberID uint32) string {
	return fmt.Sprintf("cus_test_%d", memberID)
}

func CreateMember(t *testing.T, db *gorm.DB, email string) *model.Member {
	t.Helper()

	member := model.NewMember("名古屋 太郎", "ナゴヤ タロウ", email, "4600002", "愛知県名古屋市中区丸の内1-1-1", "090-1234-5678", hashedTestPassword)
	if err := db.Create(member).Error; err != nil {
		t.Fatalf("Failed to create member: %v", err)
	}
	return member
}

// CreateSubscribedMember creates a member that already has a billing customer id.
// Whether the plan is active is up to the billing client used by the test.
func CreateSubscribedMember(t *testing.T, db *gorm.DB, email string) *model.Member {
	t.Helper()

	member := CreateMember(t, db, email)
	customerID := CustomerID(member.ID)
	member.BillingCustomerID = &customerID
	if err := db.Save(member).Error; err != nil {
		t.Fatalf("Failed to set billing customer: %v", err)
	}
	return member
}

func CreateAdmin(t *testing.T, db *gorm.DB, email string) *model.Admin {
	t.Helper()

	admin := &model.Admin{Email: email, Password: hashedTestPassword}
	if err := db.Create(admin).Error; err != nil {
		t.Fatalf("Failed to create admin: %v", err)
	}
	return admin
}

func CreateRestaurant(t *testing.T, db *gorm.DB, name string) *model.Restaurant {
	t.Helper()

	restaurant := &model.Restaurant{
		Name:            name,
		Description:     "名古屋めしの名店",
		LowestPrice:     1000,
		HighestPrice:    5000,
		PostalCode:      "4600002",
		Address:         "愛知県名古屋市中区丸の内1-1-1",
		OpeningTime:     "10:00",
		ClosingTime:     "20:00",
		SeatingCapacity: 50,
	}
	if err := db.Create(restaurant).Error; err != nil {
		t.Fatalf("Failed to create restaurant: %v", err)
	}
	return restaurant
}

func CreateCategory(t *testing.T, db *gorm.DB, name string) *model.Category {
	t.Helper()

	category := &model.Category{Name: name}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("Failed to create category: %v", err)
	}
	return category
}

func AttachCategory(t *testing.T, db *gorm.DB, restaurantID, categoryID uint32) {
	t.Helper()

	link := &model.CategoryRestaurant{RestaurantID: restaurantID, CategoryID: categoryID}
	if err := db.Create(link).Error; err != nil {
		t.Fatalf("Failed to attach category: %v", err)
	}
}

func CreateRegularHoliday(t *testing.T, db *gorm.DB, day string, value *int) *model.RegularHoliday {
	t.Helper()

	holiday := &model.RegularHoliday{Day: day, Value: value}
	if err := db.Create(holiday).Error; err != nil {
		t.Fatalf("Failed to create regular holiday: %v", err)
	}
	return holiday
}

func CreateReservation(t *testing.T, db *gorm.DB, memberID, restaurantID uint32, at time.Time) *model.Reservation {
	t.Helper()

	reservation := &model.Reservation{
		ReservedDatetime: at,
		NumberOfPeople:   2,
		MemberID:         memberID,
		RestaurantID:     restaurantID,
	}
	if err := db.Create(reservation).Error; err != nil {
		t.Fatalf("Failed to create reservation: %v", err)
	}
	return reservation
}

func CreateReview(t *testing.T, db *gorm.DB, memberID, restaurantID uint32, score int) *model.Review {
	t.Helper()

	review := &model.Review{
		Score:        score,
		Content:      "とても美味しかったです。",
		MemberID:     memberID,
		RestaurantID: restaurantID,
	}
	if err := db.Create(review).Error; err != nil {
		t.Fatalf("Failed to create review: %v", err)
	}
	return review
}
