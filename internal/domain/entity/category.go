package entity

type Category struct {
	ID   string `json:"id" firestore:"id"`
	Slug string `json:"slug" firestore:"slug"`
	Name string `json:"name" firestore:"name"`
	Icon string `json:"icon,omitempty" firestore:"icon,omitempty"`
}
