package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Friendship is one undirected edge between two users. The edge is keyed by
// the ordered pair of ids, so a pair can only ever have one document.
type Friendship struct {
	ID        string               `bson:"_id" json:"id"`
	Users     []primitive.ObjectID `bson:"users" json:"users"` // [low, high]
	CreatedAt time.Time            `bson:"createdAt" json:"createdAt"`
}

// NewFriendship builds the canonical edge for a and b regardless of argument order.
func NewFriendship(a, b primitive.ObjectID) Friendship {
	lo, hi := a, b
	if hi.Hex() < lo.Hex() {
		lo, hi = hi, lo
	}
	return Friendship{
		ID:    FriendshipKey(lo, hi),
		Users: []primitive.ObjectID{lo, hi},
	}
}

// FriendshipKey returns the edge id for the pair, independent of order.
func FriendshipKey(a, b primitive.ObjectID) string {
	ah, bh := a.Hex(), b.Hex()
	if bh < ah {
		ah, bh = bh, ah
	}
	return ah + ":" + bh
}

// Other returns the endpoint of the edge that is not id.
func (f Friendship) Other(id primitive.ObjectID) primitive.ObjectID {
	for _, u := range f.Users {
		if u != id {
			return u
		}
	}
	return primitive.NilObjectID
}

// Involves reports whether id is an endpoint of the edge.
func (f Friendship) Involves(id primitive.ObjectID) bool {
	for _, u := range f.Users {
		if u == id {
			return true
		}
	}
	return false
}
