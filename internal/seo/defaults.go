package seo

// Page names of the public site. They double as keys of the page_metadata table.
const (
	PageHome       = "Home"
	PageContact    = "Contact"
	PageFAQs       = "FAQs"
	PageOurCompany = "OurCompany"
	PageRates      = "Rates"
	PageBlog       = "Blog"
	PageTeams      = "Teams"
)

// PageNames lists the public pages in navigation order.
var PageNames = []string{PageHome, PageContact, PageFAQs, PageOurCompany, PageRates, PageBlog, PageTeams}

var defaultBundles = []Bundle{
	{
		PageName:           PageHome,
		MetaTitle:          "Expert Gati Packers and Movers Pune | Best Moving Company Mumbai",
		MetaDescription:    "Expert Gati Packers and Movers - #1 Trusted Packers and Movers in Pune & Mumbai. Professional home & office shifting services across India. Get FREE quotes! ✓Safe ✓Reliable ✓Affordable",
		MetaKeywords:       "packers and movers pune, movers pune, packers movers mumbai, home shifting pune, office relocation pune, best packers movers pune, gati packers pune",
		OGTitle:            "Expert Gati Packers and Movers - Pune & Mumbai's #1 Moving Company",
		OGDescription:      "Professional packing & moving services in Pune, Mumbai & across India. 10+ years experience, 5000+ happy customers. Get instant free quote!",
		TwitterTitle:       "Expert Gati Packers and Movers - Pune & Mumbai",
		TwitterDescription: "Trusted packers and movers in Pune & Mumbai. Safe, affordable & professional relocation services across India.",
	},
	{
		PageName:           PageContact,
		MetaTitle:          "Contact Us - Expert Gati Packers and Movers Pune | Get Free Quote",
		MetaDescription:    "Contact Expert Gati Packers and Movers for relocation services in Pune & Mumbai. Call us for FREE quotes. Available 24/7. Email, phone & visit our office for best moving rates.",
		MetaKeywords:       "contact packers movers pune, packers movers phone number pune, movers contact mumbai, free quote packers movers, relocation inquiry pune",
		OGTitle:            "Contact Expert Gati Packers and Movers - Get Free Moving Quote",
		OGDescription:      "Get in touch with Pune & Mumbai's trusted moving company. Free quotes, 24/7 support, instant response. Call now for relocation assistance!",
		TwitterTitle:       "Contact Expert Gati Packers - Free Moving Quote",
		TwitterDescription: "Need movers in Pune or Mumbai? Contact us for instant free quotes and professional moving services.",
	},
	{
		PageName:           PageFAQs,
		MetaTitle:          "FAQs - Packers and Movers Questions Answered | Expert Gati Pune",
		MetaDescription:    "Frequently asked questions about packers and movers services in Pune & Mumbai. Get answers on pricing, packing, insurance, moving process, and more. Expert Gati answers all your queries.",
		MetaKeywords:       "packers movers faqs pune, moving questions answers, relocation faq mumbai, packing services questions, moving cost queries pune",
		OGTitle:            "Moving FAQs - All Your Packing & Moving Questions Answered",
		OGDescription:      "Common questions about hiring packers and movers in Pune & Mumbai. Learn about costs, timelines, insurance, and the moving process.",
		TwitterTitle:       "Packers & Movers FAQs - Expert Gati Pune",
		TwitterDescription: "Got questions about moving? Find answers to common queries about packers and movers services in Pune & Mumbai.",
	},
	{
		PageName:           PageOurCompany,
		MetaTitle:          "About Expert Gati Packers and Movers | 10+ Years Moving Experience",
		MetaDescription:    "Learn about Expert Gati Packers and Movers - Pune & Mumbai's trusted moving company since 2013. 10+ years experience, 5000+ happy customers, professional team. Know our story & values.",
		MetaKeywords:       "about expert gati packers, moving company pune history, best movers mumbai, trusted packers movers pune, professional relocation company",
		OGTitle:            "About Expert Gati Packers - Leading Moving Company in Pune & Mumbai",
		OGDescription:      "Discover why Expert Gati is Pune & Mumbai's most trusted moving company. 10+ years of excellence, certified professionals, 5000+ successful relocations.",
		TwitterTitle:       "About Expert Gati Packers and Movers",
		TwitterDescription: "10+ years of moving excellence in Pune & Mumbai. Meet the team behind India's trusted relocation services.",
	},
	{
		PageName:           PageRates,
		MetaTitle:          "Packers and Movers Rates in Pune & Mumbai | Affordable Moving Charges",
		MetaDescription:    "Check transparent packers and movers rates in Pune & Mumbai. Affordable home & office shifting charges. No hidden costs. Get detailed pricing for local & interstate moves. Compare and save!",
		MetaKeywords:       "packers movers rates pune, moving charges mumbai, relocation cost pune, shifting charges pune mumbai, affordable movers prices, moving cost calculator",
		OGTitle:            "Affordable Packers & Movers Rates - Pune & Mumbai Pricing",
		OGDescription:      "Transparent pricing for all moving services. Check detailed rates for home shifting, office relocation & more in Pune & Mumbai. Best prices guaranteed!",
		TwitterTitle:       "Moving Rates Pune & Mumbai - Expert Gati",
		TwitterDescription: "Affordable and transparent packers and movers rates in Pune & Mumbai. No hidden charges. Get your free quote today!",
	},
	{
		PageName:           PageBlog,
		MetaTitle:          "Moving Tips & Guides Blog | Expert Gati Packers and Movers Pune",
		MetaDescription:    "Read expert moving tips, packing guides, and relocation advice. Learn how to plan your move in Pune & Mumbai. Home shifting tips, office relocation guides & more on our blog.",
		MetaKeywords:       "moving tips blog, packing guides pune, relocation advice mumbai, home shifting tips, office moving blog, packers movers articles",
		OGTitle:            "Moving & Packing Tips Blog - Expert Advice from Gati Movers",
		OGDescription:      "Expert advice on moving, packing, and relocation. Read our blog for tips to make your move in Pune & Mumbai smooth and stress-free.",
		TwitterTitle:       "Moving Tips Blog - Expert Gati Packers",
		TwitterDescription: "Get expert moving tips, packing hacks, and relocation guides. Your complete resource for stress-free moving in Pune & Mumbai.",
	},
	{
		PageName:           PageTeams,
		MetaTitle:          "Our Professional Moving Team | Expert Gati Packers and Movers",
		MetaDescription:    "Meet our experienced and professional moving team. Trained packers, skilled drivers, and courteous staff in Pune & Mumbai. Certified professionals committed to safe relocations.",
		MetaKeywords:       "professional movers team pune, expert packers staff, trained moving crew mumbai, certified relocation team, experienced movers pune",
		OGTitle:            "Meet Our Professional Moving Team - Expert Gati Pune & Mumbai",
		OGDescription:      "Our certified moving professionals are ready to handle your relocation. Experienced, trained, and committed to excellence in Pune & Mumbai.",
		TwitterTitle:       "Our Moving Team - Expert Gati Packers",
		TwitterDescription: "Meet the professional team behind Pune & Mumbai's most trusted moving company. Experienced, certified, and customer-focused.",
	},
}

// DefaultBundles returns a copy of the built-in metadata for every public page.
func DefaultBundles() []Bundle {
	out := make([]Bundle, len(defaultBundles))
	copy(out, defaultBundles)
	return out
}

// DefaultBundle returns the built-in metadata for name. Unknown pages get a bundle carrying
// only the name, so every field falls through to the resolver.
func DefaultBundle(name string) Bundle {
	for _, b := range defaultBundles {
		if b.PageName == name {
			return b
		}
	}
	return Bundle{PageName: name}
}
