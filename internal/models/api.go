package models

// HospitalsRequest uses pointers so a zero coordinate is distinguishable
// from a missing one.
type HospitalsRequest struct {
	Lat *float64 `json:"lat"`
	Lng *float64 `json:"lng"`
}

// Tool is one entry on the dashboard.
type Tool struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Path        string `json:"path"`
	Backend     bool   `json:"backend"`
}

var Tools = []Tool{
	{ID: "predict", Name: "Predict Disease", Description: "Enter symptoms and get an AI-powered diagnosis.", Path: "/predict", Backend: true},
	{ID: "chat", Name: "Symptom Chatbot", Description: "Answer a few questions about your symptoms.", Path: "/chat", Backend: true},
	{ID: "bmi", Name: "BMI Calculator", Description: "Check your BMI, ideal weight and health advice.", Path: "/bmi"},
	{ID: "diet", Name: "Diet Plan Generator", Description: "Get a daily diet plan based on your goal.", Path: "/diet"},
	{ID: "calories", Name: "Calorie Calculator", Description: "Calculate daily calories from age, height, weight and activity.", Path: "/calories"},
}
