package catalog

// Categories is the master list of place types offered to the provider.
var Categories = []string{
	"art_gallery", "museum", "park", "zoo", "church", "synagogue", "library",
	"movie_theater", "restaurant", "cafe", "tourist_attraction", "amusement_park",
	"aquarium", "book_store", "bowling_alley", "cemetery", "hindu_temple",
	"mosque", "night_club", "shopping_mall", "stadium", "university",
	"city_hall", "train_station", "subway_station", "light_rail_station",
	"fountain", "plaza", "sculpture", "historical_landmark", "campground",
}

// HistoryCategories restrict the first stop of the signature route.
var HistoryCategories = []string{
	"museum", "art_gallery", "library", "church", "synagogue", "park",
	"monument", "tourist_attraction",
}

// FoodCategories restrict the food stop of the signature route.
var FoodCategories = []string{"restaurant", "cafe", "bakery"}
