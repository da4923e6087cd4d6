package scheduler

// hm converts an hour and minute into minutes since midnight
func hm(h, m int) int {
	return h*60 + m
}

func intPtr(v int) *int {
	return &v
}

func defaultPolicy() Policy {
	return Policy{
		IdealMin:  5,
		IdealMax:  10,
		HardCap:   30,
		Tolerance: 0.10,
		EndBuffer: 30,
	}
}

func sumLengths(slices []Slice, window string) int {
	total := 0
	for _, slice := range slices {
		if slice.Window == window {
			total += slice.Length
		}
	}
	return total
}

func findWorker(roster []Worker, name string) Worker {
	for _, worker := range roster {
		if worker.Name == name {
			return worker
		}
	}
	return Worker{}
}

// deskRoster is the original desk team
func deskRoster() []Worker {
	return []Worker{
		{Name: "Anish", Start: hm(9, 0), End: hm(18, 0)},
		{Name: "Ashish", Start: hm(7, 30), End: hm(16, 30)},
		{Name: "Chetan", Start: hm(9, 0), End: hm(18, 0)},
		{Name: "Dany", Start: hm(7, 30), End: hm(16, 30)},
		{Name: "Franky", Start: hm(7, 30), End: hm(16, 30)},
		{Name: "Kartik", Start: hm(7, 30), End: hm(16, 30)},
		{Name: "Priya", Start: hm(7, 30), End: hm(16, 30)},
		{Name: "Rajni", Start: hm(9, 0), End: hm(18, 0)},
		{Name: "Sarthak", Start: hm(7, 30), End: hm(16, 30)},
		{Name: "Shalini", Start: hm(7, 30), End: hm(16, 30)},
		{Name: "Tapaswini", Start: hm(13, 0), End: hm(21, 0)},
	}
}

func deskWindows() []Window {
	return []Window{
		{Label: "Early", Start: hm(7, 30), End: hm(9, 0)},
		{Label: "Core", Start: hm(9, 0), End: hm(13, 0)},
		{Label: "Afternoon", Start: hm(13, 0), End: hm(18, 0)},
		{Label: "Evening", Start: hm(18, 0), End: hm(21, 0)},
	}
}
