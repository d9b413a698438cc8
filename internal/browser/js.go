package browser

// Element lookups run in the page. Names are compared after collapsing
// whitespace, the way assistive technology reads them. Lookups prefer
// visible elements because responsive layouts often keep hidden copies
// of the same control.

const helpersJS = `
	const norm = (s) => (s || '').replace(/\s+/g, ' ').trim();
	const visible = (el) => typeof el.checkVisibility === 'function'
		? el.checkVisibility()
		: el.getClientRects().length > 0;
	const accessibleName = (el) => norm(el.getAttribute('aria-label')) || norm(el.innerText) || norm(el.value);
`

// findByLabelJS tries exact label text first, then a case-insensitive
// substring so "Email address *" still resolves "Email Address".
const findByLabelJS = `(text) => {` + helpersJS + `
	const want = text.toLowerCase();
	for (const exact of [true, false]) {
		const hit = (s) => exact ? s === text : s !== '' && s.toLowerCase().includes(want);
		for (const l of document.querySelectorAll('label')) {
			if (l.control && hit(norm(l.textContent))) return l.control;
		}
		for (const el of document.querySelectorAll('input, textarea, select')) {
			if (hit(norm(el.getAttribute('aria-label'))) || hit(norm(el.placeholder))) return el;
		}
	}
	return null;
}`

// findByRoleJS returns the first visible match, or the first hidden one
// when nothing matching is visible yet.
const findByRoleJS = `(selector, name) => {` + helpersJS + `
	let hidden = null;
	for (const el of document.querySelectorAll(selector)) {
		if (accessibleName(el) !== name) continue;
		if (visible(el)) return el;
		if (!hidden) hidden = el;
	}
	return hidden;
}`

// isVisibleJS answers immediately; absence is false, not an error.
const isVisibleJS = `(selector, name) => {` + helpersJS + `
	for (const el of document.querySelectorAll(selector)) {
		if (accessibleName(el) === name && visible(el)) return true;
	}
	return false;
}`

// findTextJS returns null until a rendered element shows text, so
// ElementByJS keeps retrying past script payloads and hidden copies.
const findTextJS = `(text) => {` + helpersJS + `
	const skip = new Set(['SCRIPT', 'STYLE', 'NOSCRIPT', 'TEMPLATE']);
	const walker = document.createTreeWalker(document.body, NodeFilter.SHOW_TEXT);
	for (let n = walker.nextNode(); n; n = walker.nextNode()) {
		const el = n.parentElement;
		if (!el || skip.has(el.tagName) || !n.textContent.includes(text)) continue;
		if (visible(el)) return el;
	}
	return null;
}`
