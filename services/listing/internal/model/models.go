package model

// All returns every model in migration order.
func All() []interface{} {
	return []interface{}{
		&CategoryModel{},
		&ListingModel{},
		&ListingImageModel{},
		&FavoriteModel{},
		&ViewModel{},
	}
}
