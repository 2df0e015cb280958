package resource

const systemPrompt = `You are an expert project manager and resource planner with deep knowledge of software development, business operations, and technology implementation. You provide detailed, realistic resource estimates for implementing business ideas.`

const estimatePrompt = `Based on the following information, provide a comprehensive and REALISTIC resource estimation for implementing this idea.

COMPANY INFORMATION:
Company: %s
Business Overview: %s
Company Size/Revenue: %s

Current Initiatives: %s

IDEA TO IMPLEMENT:
Title: %s
Description: %s

MARKET CONTEXT:
Existing Implementations: %d companies already implementing similar ideas
Key Benefits: %s
Key Challenges: %s

---

Provide realistic, detailed and concrete estimates.

Respond with a valid JSON object containing exactly these fields:
1. "team_resources": list of objects with "role", "number_of_people", "required_skills", "allocation", "description".
2. "timeline": list of objects with "phase", "duration", "key_deliverables", "dependencies".
3. "technical_infrastructure": list of strings naming tools, cloud services, databases.
4. "risks": list of objects with "risk", "impact_level" (High/Medium/Low), "mitigation_strategy".
5. "success_metrics": list of objects with "metric", "target_value", "measurement_frequency".

Example:
{
  "team_resources": [
    {"role": "Senior Full-Stack Developer", "number_of_people": "2 developers", "required_skills": "React, Node.js, PostgreSQL, AWS", "allocation": "Full-time for 8 months", "description": "Lead development of the core platform"}
  ],
  "timeline": [
    {"phase": "Discovery & Planning", "duration": "4 weeks", "key_deliverables": "Requirements doc, architecture", "dependencies": "None"}
  ],
  "technical_infrastructure": ["Git, Docker", "AWS EC2 t3.large instances", "PostgreSQL 14+"],
  "risks": [
    {"risk": "Lack of AI expertise", "impact_level": "High", "mitigation_strategy": "Hire experienced ML engineer"}
  ],
  "success_metrics": [
    {"metric": "User Adoption Rate", "target_value": "500 active users", "measurement_frequency": "Weekly"}
  ]
}

Respond with JSON only, without markdown fences.`
