package main

import "github.com/GoSim-25-26J-441/projects-miniapp/internal/projects/domain"

var seedProjects = []domain.Project{
	{Name: "Community Garden", Description: "Raised beds and a rain water tank for the courtyard behind the library.", Budget: 4200, ImageURL: "https://picsum.photos/seed/garden/320/200", IsActive: true},
	{Name: "Bike Repair Cafe", Description: "Monthly volunteer workshop with shared tools and spare parts.", Budget: 1500, ImageURL: "https://picsum.photos/seed/bike/320/200", IsActive: true},
	{Name: "Open Data Portal", Description: "Publish the city transport timetables as an open API.", Budget: 28000, ImageURL: "https://picsum.photos/seed/data/320/200", IsActive: false},
	{Name: "Solar Roof", Description: "Photovoltaic panels for the school gym roof, including inverter and monitoring.", Budget: 125000, ImageURL: "https://picsum.photos/seed/solar/320/200", IsActive: true},
	{Name: "Street Library", Description: "Weatherproof book exchange boxes at five bus stops.", Budget: 900, ImageURL: "https://picsum.photos/seed/books/320/200", IsActive: false},
	{Name: "Coding Club", Description: "After-school programming lessons for teenagers, laptops included.", Budget: 7600, ImageURL: "https://picsum.photos/seed/code/320/200", IsActive: true},
}
