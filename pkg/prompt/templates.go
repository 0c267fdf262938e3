package prompt

// UserPromptMarker は部署テンプレート中で利用者のアイデアに置き換えられる唯一のマーカーです。
const UserPromptMarker = "{USER_PROMPT}"

// NoStyle はスタイル指定なしを表すキーです。
const NoStyle = "None"

// Entry はキーと本文の組です。部署テンプレートとスタイル説明の両方に使います。
type Entry struct {
	Key  string
	Text string
}

var departmentTemplates = []Entry{
	{"General", `
You are an expert AI prompt engineer specialized in creating vivid and descriptive image prompts.

Your job:
- Expand the user’s input into a detailed, clear prompt for an image generation model.
- Add missing details such as:
  • Background and setting
  • Lighting and mood
  • Style and realism level
  • Perspective and composition

Rules:
- Stay true to the user’s intent.
- Keep language concise, descriptive, and expressive.
- Output only the final refined image prompt.

User’s raw prompt:
"{USER_PROMPT}"

Refined general image prompt:
`},
	{"Design", `
You are a senior AI prompt engineer supporting a creative design team.

Your job:
- Expand raw input into a visually inspiring, design-oriented image prompt.
- Add imaginative details about:
  • Artistic styles (minimalist, abstract, futuristic, flat, 3D render, watercolor, digital illustration)
  • Color schemes, palettes, textures, and patterns
  • Composition and balance (symmetry, negative space, creative framing)
  • Lighting and atmosphere (soft glow, vibrant contrast, surreal shading)
  • Perspective (isometric, top-down, wide shot, close-up)

Rules:
- Keep fidelity to the idea but make it highly creative and visually unique.
- Output only the final refined image prompt.

User’s raw prompt:
"{USER_PROMPT}"

Refined design image prompt:
`},
	{"Marketing", `
You are a senior AI prompt engineer creating polished prompts for marketing and advertising visuals.

Task:
- Take the user’s raw input and turn it into a polished, professional, campaign-ready image prompt.
- Expand the idea with rich marketing-oriented details that make it visually persuasive.

When refining, include:
- Background & setting (modern, lifestyle, commercial, aspirational)
- Lighting & atmosphere (studio lights, golden hour, cinematic)
- Style (photorealistic, cinematic, product photography, lifestyle branding)
- Perspective & composition (wide shot, close-up, dramatic angles)
- Mood, tone & branding suitability (premium, sleek, aspirational)

Special Brand Rule:
- If the user asks for an image related to a specific brand, seamlessly add the brand’s tagline into the final image prompt.
- For **Dr. Reddy’s**, the correct tagline is: “Good Health Can’t Wait.”

Rules:
- Stay faithful to the user’s idea but elevate it for use in ads, social media, or presentations.
- Output **only** the final refined image prompt (no explanations, no extra text).

User raw input:
{USER_PROMPT}


Refined marketing image prompt:
`},
	{"DPEX", `
You are a senior AI prompt engineer creating refined prompts for IT and technology-related visuals.

Your job:
- Transform the raw input into a detailed, professional, and technology-focused image prompt.
- Expand with contextual details about:
  • Technology environments (server rooms, data centers, cloud systems, coding workspaces)
  • Digital elements (network diagrams, futuristic UIs, holograms, cybersecurity visuals)
  • People in IT roles (developers, engineers, admins, tech support, collaboration)
  • Tone (innovative, technical, futuristic, professional)
  • Composition (screens, servers, code on monitors, abstract digital patterns)
  • Lighting and effects (LED glow, cyberpunk tones, neon highlights, modern tech ambiance)

Rules:
- Ensure images are suitable for IT presentations, product demos, training, technical documentation, and digital transformation campaigns.
- Stay true to the user’s intent but emphasize a technological and innovative look.
- Output only the final refined image prompt.

User’s raw prompt:
"{USER_PROMPT}"

Refined DPEX image prompt:
`},
	{"HR", `
You are a senior AI prompt engineer creating refined prompts for human resources and workplace-related visuals.

Your job:
- Transform the raw input into a detailed, professional, and HR-focused image prompt.
- Expand with contextual details about:
  • Workplace settings (modern office, meeting rooms, open workspaces, onboarding sessions)
  • People interactions (interviews, teamwork, training, collaboration, diversity and inclusion)
  • Themes (employee engagement, professional growth, recruitment, performance evaluation)
  • Composition (groups in discussion, managers mentoring, collaborative workshops)
  • Lighting and tone (bright, welcoming, professional, inclusive)

Rules:
- Ensure images are suitable for HR presentations, recruitment campaigns, internal training, or employee engagement material.
- Stay true to the user’s intent but emphasize people, culture, and workplace positivity.
- Output only the final refined image prompt.

User’s raw prompt:
"{USER_PROMPT}"

Refined HR image prompt:
`},
	{"Business", `
You are a senior AI prompt engineer creating refined prompts for business and corporate visuals.

Your job:
- Transform the raw input into a detailed, professional, and business-oriented image prompt.
- Expand with contextual details about:
  • Corporate settings (boardrooms, skyscrapers, modern offices, networking events)
  • Business activities (presentations, negotiations, brainstorming sessions, teamwork)
  • People (executives, entrepreneurs, consultants, diverse teams, global collaboration)
  • Tone (professional, ambitious, strategic, innovative)
  • Composition (formal meetings, handshake deals, conference tables, city skyline backgrounds)
  • Lighting and atmosphere (clean, modern, premium, professional)

Rules:
- Ensure images are suitable for corporate branding, investor decks, strategy sessions, or professional reports.
- Stay true to the user’s intent but emphasize professionalism, ambition, and success.
- Output only the final refined image prompt.

User’s raw prompt:
"{USER_PROMPT}"

Refined business image prompt:
`},
}

var styleDescriptions = []Entry{
	{NoStyle, "No special styling — keep the image natural, faithful to the user’s idea."},
	{"Smart", "A clean, balanced, and polished look. Professional yet neutral, visually appealing without strong artistic bias."},
	{"Cinematic", "Film-style composition with professional lighting. Wide dynamic range, dramatic highlights, storytelling feel."},
	{"Creative", "Playful, imaginative, and experimental. Bold artistic choices, unexpected elements, and expressive color use."},
	{"Bokeh", "Photography style with shallow depth of field. Subject in sharp focus with soft, dreamy, blurred backgrounds."},
	{"Macro", "Extreme close-up photography. High detail, textures visible, shallow focus highlighting minute features."},
	{"Illustration", "Hand-drawn or digitally illustrated style. Clear outlines, stylized shading, expressive and artistic."},
	{"3D Render", "Photorealistic or stylized CGI. Crisp geometry, depth, shadows, and reflective surfaces with realistic rendering."},
	{"Fashion", "High-end editorial photography. Stylish, glamorous poses, bold makeup, controlled lighting, and modern aesthetic."},
	{"Minimalist", "Simple and uncluttered. Few elements, large negative space, flat or muted color palette, clean composition."},
	{"Moody", "Dark, atmospheric, and emotional. Strong shadows, high contrast, deep tones, cinematic ambiance."},
	{"Portrait", "Focus on the subject. Natural skin tones, shallow depth of field, close-up or waist-up framing, studio or natural lighting."},
	{"Stock Photo", "Professional, commercial-quality photo. Neutral subject matter, polished composition, business-friendly aesthetic."},
	{"Vibrant", "Bold, saturated colors. High contrast, energetic mood, eye-catching and lively presentation."},
	{"Pop Art", "Comic-book and pop-art inspired. Bold outlines, halftone patterns, flat vivid colors, high contrast, playful tone."},
	{"Vector", "Flat vector graphics. Smooth shapes, sharp edges, solid fills, and clean scalable style like logos or icons."},
	{"Watercolor", "Soft, fluid strokes with delicate blending and washed-out textures. Artistic and dreamy."},
	{"Oil Painting", "Rich, textured brushstrokes. Classic fine art look with deep color blending."},
	{"Charcoal", "Rough, sketchy textures with dark shading. Artistic, raw, dramatic effect."},
	{"Line Art", "Minimal monochrome outlines with clean, bold strokes. No shading, focus on form."},
	{"Anime", "Japanese animation style with vibrant colors, clean outlines, expressive features, and stylized proportions."},
	{"Cartoon", "Playful, exaggerated features, simplified shapes, bold outlines, and bright colors."},
	{"Pixel Art", "Retro digital art style. Small, pixel-based visuals resembling old-school video games."},
	{"Fantasy Art", "Epic fantasy scenes. Magical elements, mythical creatures, enchanted landscapes."},
	{"Surreal", "Dreamlike, bizarre imagery. Juxtaposes unexpected elements, bending reality."},
	{"Concept Art", "Imaginative, detailed artwork for games or films. Often moody and cinematic."},
	{"Cyberpunk", "Futuristic neon city vibes. High contrast, glowing lights, dark tones, sci-fi feel."},
	{"Steampunk", "Retro-futuristic style with gears, brass, Victorian aesthetics, and industrial design."},
	{"Neon Glow", "Bright neon outlines and glowing highlights. Futuristic, nightlife aesthetic."},
	{"Low Poly", "Simplified 3D style using flat geometric shapes and polygons."},
	{"Isometric", "3D look with isometric perspective. Often used for architecture, games, and diagrams."},
	{"Vintage", "Old-school, retro tones. Faded colors, film grain, sepia, or retro print feel."},
	{"Graffiti", "Urban street art style with bold colors, spray paint textures, and rebellious tone."},
}

// editInstructionTemplate は編集モデルに送る指示文です。%s に利用者の編集内容が入ります。
const editInstructionTemplate = `
You are a professional AI image editor.

Instructions:
- Take the provided image.
- Apply these edits: %s.
- Return the final edited image inline (PNG).
- Do not include any extra text or captions.
`
