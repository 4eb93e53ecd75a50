// Package firestore stores profiles and family data in Cloud Firestore
// using the document layout of the mobile clients:
//
//	users/{uid}
//	groups/{familyId}
//	groups/{familyId}/lists/{listId}/items/{itemId}
//	groups/{familyId}/favoritos/{productId}
//	groups/{familyId}/historial/{entryId}
package firestore

import (
	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/Kerhoff/familycart/internal/repository"
)

const (
	usersCollection     = "users"
	groupsCollection    = "groups"
	listsCollection     = "lists"
	itemsCollection     = "items"
	favoritesCollection = "favoritos"
	historyCollection   = "historial"
)

// NewStore returns every repository backed by client.
func NewStore(client *firestore.Client) repository.Store {
	return repository.Store{
		Users:     NewUserRepository(client),
		Families:  NewFamilyRepository(client),
		Lists:     NewListRepository(client),
		Favorites: NewFavoriteRepository(client),
		Purchases: NewPurchaseRepository(client),
	}
}

func group(client *firestore.Client, familyID string) *firestore.DocumentRef {
	return client.Collection(groupsCollection).Doc(familyID)
}

func items(client *firestore.Client, familyID, listID string) *firestore.CollectionRef {
	return group(client, familyID).Collection(listsCollection).Doc(listID).Collection(itemsCollection)
}

func isNotFound(err error) bool {
	return status.Code(err) == codes.NotFound
}

// decodeAll drains iter, decoding every document into a new T and handing
// it to setID together with the document id.
func decodeAll[T any](iter *firestore.DocumentIterator, setID func(*T, string)) ([]*T, error) {
	defer iter.Stop()

	var results []*T
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		var m T
		if err := doc.DataTo(&m); err != nil {
			return nil, err
		}
		if setID != nil {
			setID(&m, doc.Ref.ID)
		}
		results = append(results, &m)
	}
	return results, nil
}
