package questions

const generatePrompt = `You are generating development questions strictly for a Proof of Concept (POC).

POC CONTEXT:
- POC Title: %s
- POC Description: %s

MARKET CONTEXT (reference only, do not ask about it):
- Similar solutions exist: %s

TASK:
Generate only the essential questions (between 3 and 5) needed to validate this POC. Generate fewer questions when the POC is simple.

QUESTION CATEGORIES (pick the most relevant):
1. Problem & Use Case: what specific problem does this POC solve and for whom?
2. Data & Inputs: what data or inputs are needed to demonstrate the POC?
3. Success Criteria: what outcome proves the POC works?
4. Technical Approach: what is the core technical approach or method?
5. Scope Boundaries: what is explicitly in scope and out of scope?

RULES:
- 3 to 5 questions at most
- Focus only on what needs to be built and demonstrated
- Do not mention company names
- Do not ask about business strategy, ROI, competitors or market positioning
- Do not ask about scaling, production deployment or long-term plans
- Questions must be answerable by the person building the POC
- Keep questions short, clear and actionable

Return a JSON array:
[
  {
    "category": "Problem & Use Case",
    "question": "Clear, direct POC question",
    "priority": "Must Answer",
    "key": "problem_1",
    "follow_ups": []
  }
]`
