package jobtitle

var DefaultTable = []Category{
	{
		Name: "Backend Engineer/Developer",
		Variations: []string{
			"Backend", "Back End", "Backend Engineer", "Backend Developer",
			"Back End Engineer", "Back End Developer", "Server Developer",
		},
	},
	{
		Name: "Frontend Engineer/Developer",
		Variations: []string{
			"Frontend", "Front End", "Frontend Engineer", "Frontend Developer",
			"Front End Engineer", "Front End Developer", "UI Developer",
		},
	},
	{
		Name: "Fullstack Engineer/Developer",
		Variations: []string{
			"Fullstack", "Full Stack", "Fullstack Engineer", "Fullstack Developer",
			"Full Stack Engineer", "Full Stack Developer",
		},
	},
	{
		Name: "Mobile Engineer/Developer",
		Variations: []string{
			"Mobile Engineer", "Mobile Developer", "Android Developer",
			"iOS Developer", "Mobile Application Developer",
		},
	},
	{
		Name: "Data Scientist/Analyst",
		Variations: []string{
			"Data Scientist", "Data Analyst", "Machine Learning Engineer",
			"Data Engineer",
		},
	},
	{
		Name: "DevOps/Platform Engineer",
		Variations: []string{
			"DevOps", "DevOps Engineer", "Platform Engineer",
			"Site Reliability Engineer", "SRE", "Infrastructure Engineer",
		},
	},
	{
		Name: "QA Engineer/Tester",
		Variations: []string{
			"QA", "QA Engineer", "Quality Assurance", "Test Engineer", "Tester",
		},
	},
	{
		Name: "UI/UX Designer",
		Variations: []string{
			"UI Designer", "UX Designer", "UI/UX Designer", "Graphic Designer",
			"Visual Designer", "Product Designer",
		},
	},
}
