package types

// SampleDocument returns the sample resume every new session starts with.
func SampleDocument() *ResumeDocument {
	return &ResumeDocument{
		PersonalInfo: PersonalInfo{
			Name:     "Alex Johnson",
			Title:    "Senior Frontend Developer",
			Email:    "alex.johnson@example.com",
			Phone:    "(555) 123-4567",
			Location: "San Francisco, CA",
			LinkedIn: "linkedin.com/in/alexjohnson",
			Website:  "alexjohnson.dev",
			Summary:  "Experienced frontend developer with 5+ years specializing in React and modern JavaScript frameworks. Passionate about creating responsive, accessible, and performant web applications.",
		},
		Education: []EducationItem{
			{
				ID:           "1",
				School:       "University of California",
				Degree:       "Bachelor of Science",
				FieldOfStudy: "Computer Science",
				StartDate:    "2014",
				EndDate:      "2018",
				Location:     "Berkeley, CA",
				Description:  "Graduated with honors. Relevant coursework: Data Structures, Algorithms, Web Development.",
			},
		},
		Experience: []ExperienceItem{
			{
				ID:        "1",
				Company:   "Tech Innovations Inc.",
				Position:  "Senior Frontend Developer",
				StartDate: "Jan 2021",
				EndDate:   "Present",
				Location:  "San Francisco, CA",
				Description: []string{
					"Led a team of 5 developers to rebuild the company's flagship product using React and TypeScript",
					"Improved page load times by 40% through code splitting and lazy loading techniques",
					"Implemented comprehensive unit testing with Jest and React Testing Library, achieving 85% code coverage",
					"Mentored junior developers and conducted regular code reviews to maintain code quality",
				},
			},
			{
				ID:        "2",
				Company:   "Digital Solutions LLC",
				Position:  "Frontend Developer",
				StartDate: "Mar 2018",
				EndDate:   "Dec 2020",
				Location:  "San Francisco, CA",
				Description: []string{
					"Developed responsive web applications using React, Redux, and SCSS",
					"Collaborated with designers to implement pixel-perfect UI components",
					"Built and maintained the company's component library, improving development efficiency by 30%",
				},
			},
		},
		Projects: []ProjectItem{
			{
				ID:        "1",
				Name:      "E-commerce Platform Redesign",
				Company:   "Tech Innovations Inc.",
				StartDate: "Apr 2022",
				EndDate:   "Aug 2022",
				Description: []string{
					"Redesigned the user interface of a major e-commerce platform serving 2M+ customers",
					"Implemented responsive design principles, improving mobile conversion rates by 25%",
					"Integrated with payment gateways and shipping APIs for a seamless checkout experience",
				},
				Technologies: "React, TypeScript, Stripe API, Redux, Styled Components",
				Link:         "https://project-demo.example.com",
			},
			{
				ID:        "2",
				Name:      "Portfolio Website",
				Company:   "Self-directed",
				StartDate: "Jan 2021",
				EndDate:   "Feb 2021",
				Description: []string{
					"Designed and developed a personal portfolio website to showcase projects",
					"Implemented animations and transitions for an engaging user experience",
					"Optimized for performance with a 98 Lighthouse performance score",
				},
				Technologies: "Next.js, Tailwind CSS, Framer Motion",
				Link:         "https://alexjohnson.dev",
			},
		},
		SkillCategories: []SkillCategory{
			{
				ID:   "1",
				Name: "Programming Languages",
				Skills: []SkillItem{
					{ID: "1", Name: "JavaScript", Level: IntPtr(5)},
					{ID: "2", Name: "TypeScript", Level: IntPtr(4)},
					{ID: "3", Name: "HTML5", Level: IntPtr(5)},
					{ID: "4", Name: "CSS3/SCSS", Level: IntPtr(4)},
				},
			},
			{
				ID:   "2",
				Name: "Frameworks & Libraries",
				Skills: []SkillItem{
					{ID: "1", Name: "React", Level: IntPtr(5)},
					{ID: "2", Name: "Redux", Level: IntPtr(4)},
					{ID: "3", Name: "Next.js", Level: IntPtr(4)},
					{ID: "4", Name: "Tailwind CSS", Level: IntPtr(5)},
				},
			},
		},
		Template: TemplateProfessional,
	}
}
