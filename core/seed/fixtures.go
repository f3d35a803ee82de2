package seed

import "github.com/doonites/schoolhub/core/school"

type classFixture struct {
	name       string
	sections   []string
	monthlyFee int64
}

type staffFixture struct {
	name  string
	email string // local part
	role  string
}

var (
	classFixtures = []classFixture{
		{name: "Class 6", sections: []string{"A", "B"}, monthlyFee: 4500},
		{name: "Class 7", sections: []string{"A", "B"}, monthlyFee: 4500},
		{name: "Class 8", sections: []string{"A", "B", "C"}, monthlyFee: 5000},
		{name: "Class 9", sections: []string{"A", "B", "C"}, monthlyFee: 5500},
		{name: "Class 10", sections: []string{"A", "B"}, monthlyFee: 6000},
		{name: "Class 11", sections: []string{"Science", "Commerce"}, monthlyFee: 7000},
		{name: "Class 12", sections: []string{"Science", "Commerce"}, monthlyFee: 7500},
	}

	subjects = []string{"Mathematics", "Science", "English", "Hindi", "Social Studies", "Computer Science"}

	teacherNames = []string{
		"Anita Sharma", "Rajesh Kumar", "Priya Verma", "Sunil Mehta", "Kavita Joshi",
		"Amit Bhatt", "Neha Rawat", "Vikram Negi", "Pooja Bisht", "Sanjay Thapa",
		"Meena Gupta", "Deepak Chauhan", "Ritu Kapoor", "Manoj Pant", "Shalini Dobhal",
		"Arun Nautiyal", "Geeta Semwal", "Harish Uniyal", "Nisha Bahuguna", "Tarun Juyal",
	}

	firstNames = []string{
		"Aarav", "Vivaan", "Aditya", "Vihaan", "Arjun", "Sai", "Reyansh", "Ayaan",
		"Krishna", "Ishaan", "Ananya", "Diya", "Saanvi", "Aadhya", "Kiara", "Myra",
		"Pari", "Anika", "Navya", "Ira", "Kabir", "Rohan", "Tara", "Zoya", "Meher",
	}

	lastNames = []string{
		"Sharma", "Verma", "Rawat", "Negi", "Bisht", "Thapa", "Gupta", "Chauhan",
		"Kapoor", "Pant", "Joshi", "Mehta", "Semwal", "Uniyal", "Dobhal", "Juyal",
	}

	staffFixtures = []staffFixture{
		{name: "Ravindra Singh", email: "principal", role: school.RoleSuperAdmin},
		{name: "Sunita Rana", email: "office", role: school.RoleAdmin},
		{name: "Mohan Lal", email: "library", role: school.RoleLibrarian},
	}

	messageTemplates = []string{
		"Please submit your homework by tomorrow.",
		"Good work on the last test!",
		"Can we discuss the project after class?",
		"I have a doubt in today's chapter.",
		"Don't forget the science fair on Friday.",
		"Thank you, ma'am!",
		"Your attendance has been low this month.",
		"I will bring the signed form tomorrow.",
	}

	notificationTemplates = []struct{ title, body string }{
		{title: "Fee reminder", body: "The fees for this month are due on the 10th."},
		{title: "Timetable updated", body: "The timetable for next week has been published."},
		{title: "Parent-teacher meeting", body: "The next parent-teacher meeting is on Saturday at 10 AM."},
		{title: "Holiday notice", body: "The school will remain closed on Monday."},
	}
)

const (
	studentsPerSection      = 6
	parentsLimit            = 20
	conversationsLimit      = 5
	minMessages             = 3
	extraMessages           = 3 // message count = minMessages + rand(0..extraMessages-1)
	readRatio               = 0.7
	notificationsPerUser    = 2
	notifiedStudentsLimit   = 5
	messageWindowPerMessage = 24 // hours
)
